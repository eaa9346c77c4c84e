package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestDefinitionList(t *testing.T) {
	tokens := tokenize(t, "Term\n: the definition\n")
	kinds := kindsOf(tokens)
	assert.Contains(t, kinds, DLTitleBegin)
	assert.Contains(t, kinds, DLTitleEnd)
	assert.Contains(t, kinds, DLDefinitionBegin)
	assert.Contains(t, kinds, DLDefinitionEnd)
	assert.NotContains(t, kinds, ParagraphBegin)
}

func TestDefinitionListMultipleDefinitions(t *testing.T) {
	tokens := tokenize(t, "Term\n: first\n: second\n")
	var defs int
	for _, tok := range tokens {
		if tok.Kind == DLDefinitionBegin {
			defs++
		}
	}
	assert.Equal(t, 2, defs)
}

func TestDefinitionListBridgeOutput(t *testing.T) {
	tokens := tokenize(t, "Term\n: the definition\n\nAfter paragraph.\n")
	b := NewBridge("doc.md", nil, nil, nil)
	out := string(b.Render(tokens))
	require.Contains(t, out, "<dl>")
	assert.Contains(t, out, "<dt>Term</dt>")
	assert.Contains(t, out, "<dd>the definition</dd>")
	assert.Contains(t, out, "</dl>")
	assert.Contains(t, out, "<p>After paragraph.</p>")
	dlClose := strings.Index(out, "</dl>")
	pOpen := strings.Index(out, "<p>")
	assert.Less(t, dlClose, pOpen, "the <dl> must close before the following paragraph")
}

func TestListLooseWhenBlankSeparatesItems(t *testing.T) {
	tokens := tokenize(t, "- a\n\n- b\n")
	var listEnd *Token
	for i := range tokens {
		if tokens[i].Kind == ListEnd {
			listEnd = &tokens[i]
		}
	}
	require.NotNil(t, listEnd)
	assert.Equal(t, Loose, listEnd.ListSpacing)
}

func TestListTightWithTrailingBlank(t *testing.T) {
	tokens := tokenize(t, "- a\n- b\n\nparagraph after\n")
	var listEnd *Token
	for i := range tokens {
		if tokens[i].Kind == ListEnd {
			listEnd = &tokens[i]
			break
		}
	}
	require.NotNil(t, listEnd)
	assert.Equal(t, DefaultTight, listEnd.ListSpacing)
}

func TestLooseListWrapsItemsInParagraphs(t *testing.T) {
	tokens := tokenize(t, "- a\n\n- b\n")
	b := NewBridge("doc.md", nil, nil, nil)
	out := string(b.Render(tokens))
	assert.Contains(t, out, "<li><p>a</p></li>")
}
