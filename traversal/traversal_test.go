package traversal

import (
	"testing"

	"github.com/arborview/parsekit/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *dom.Element {
	root := dom.NewElement("div")
	a := dom.NewElement("p")
	a.AppendChild(dom.NewText("one"))
	b := dom.NewElement("p")
	b.AppendChild(dom.NewText("two"))
	root.AppendChild(a)
	root.AppendChild(b)
	return root
}

func TestNodeIteratorVisitsInDocumentOrder(t *testing.T) {
	root := buildTree()
	it := NewNodeIterator(root, ShowAll, nil)

	var seen []string
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		if e, ok := n.(*dom.Element); ok {
			seen = append(seen, e.TagName)
		}
	}
	assert.Equal(t, []string{"p", "p"}, seen)
}

func TestNodeIteratorFiltersByWhatToShow(t *testing.T) {
	root := buildTree()
	it := NewNodeIterator(root, ShowText, nil)

	var texts []string
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		texts = append(texts, n.(*dom.Text).Data)
	}
	assert.Equal(t, []string{"one", "two"}, texts)
}

func TestTreeWalkerFirstChildAndNextSibling(t *testing.T) {
	root := buildTree()
	w := NewTreeWalker(root, ShowElement, nil)

	first := w.FirstChild()
	require.NotNil(t, first)
	assert.Equal(t, "p", first.(*dom.Element).TagName)

	second := w.NextSibling()
	require.NotNil(t, second)
	assert.Equal(t, "p", second.(*dom.Element).TagName)
	assert.Nil(t, w.NextSibling())
}

func TestTreeWalkerRejectSkipsSubtree(t *testing.T) {
	root := buildTree()
	filter := NodeFilterFunc(func(n dom.Node) FilterResult {
		if e, ok := n.(*dom.Element); ok && e.TagName == "p" {
			return FilterReject
		}
		return FilterAccept
	})
	w := NewTreeWalker(root, ShowAll, filter)
	assert.Nil(t, w.FirstChild())
}
