package dom

import "testing"

func TestSiblingNavigation(t *testing.T) {
	root := NewElement("div")
	a := NewElement("a")
	b := NewElement("b")
	root.AppendChild(a)
	root.AppendChild(b)

	if NextSibling(a) != Node(b) {
		t.Fatalf("expected b to be a's next sibling")
	}
	if PreviousSibling(b) != Node(a) {
		t.Fatalf("expected a to be b's previous sibling")
	}
	if PreviousSibling(a) != nil {
		t.Fatalf("expected a to have no previous sibling")
	}
}

func TestOwnerDocumentWalksUpToDocument(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	body := NewElement("body")
	doc.AppendChild(html)
	html.AppendChild(body)

	if OwnerDocument(body) != doc {
		t.Fatalf("expected body's owner document to be doc")
	}
}

func TestContainsAndCompareDocumentPosition(t *testing.T) {
	root := NewElement("div")
	a := NewElement("a")
	b := NewElement("b")
	root.AppendChild(a)
	root.AppendChild(b)

	if !Contains(root, a) {
		t.Fatalf("expected root to contain a")
	}
	if Contains(a, b) {
		t.Fatalf("expected a to not contain b")
	}
	if CompareDocumentPosition(a, b)&PositionFollowing == 0 {
		t.Fatalf("expected b to follow a")
	}
}

func TestIsEqualNodeComparesStructure(t *testing.T) {
	a := NewElement("p")
	a.SetAttr("class", "x")
	a.AppendChild(NewText("hi"))

	b := NewElement("p")
	b.SetAttr("class", "x")
	b.AppendChild(NewText("hi"))

	if !IsEqualNode(a, b) {
		t.Fatalf("expected structurally identical elements to be equal")
	}
	if IsSameNode(a, b) {
		t.Fatalf("expected distinct elements to not be the same node")
	}
}

func TestNormalizeMergesAdjacentTextNodes(t *testing.T) {
	root := NewElement("p")
	root.AppendChild(NewText("a"))
	root.AppendChild(NewText("b"))
	root.AppendChild(NewElement("br"))
	root.AppendChild(NewText(""))
	root.AppendChild(NewText("c"))

	Normalize(root)

	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("expected [ab, br, c] after normalize, got %d children", len(children))
	}
	if children[0].(*Text).Data != "ab" {
		t.Fatalf("expected merged text \"ab\", got %q", children[0].(*Text).Data)
	}
	if children[2].(*Text).Data != "c" {
		t.Fatalf("expected trailing text \"c\", got %q", children[2].(*Text).Data)
	}
}

func TestValidateNameRejectsInvalidCharacters(t *testing.T) {
	if err := ValidateName("ok-name"); err != nil {
		t.Fatalf("expected valid name to pass: %v", err)
	}
	if err := ValidateName("1bad"); err == nil {
		t.Fatalf("expected leading-digit name to be rejected")
	}
	if _, ok := ValidateName("1bad").(*DOMError); !ok {
		t.Fatalf("expected a *DOMError")
	}
}

func TestNamedNodeMapSetAndRemove(t *testing.T) {
	attrs := NewAttributes()
	m := NewNamedNodeMap(attrs)

	if _, err := m.SetNamedItem(Attribute{Name: "id", Value: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Length() != 1 {
		t.Fatalf("expected length 1, got %d", m.Length())
	}
	if got := m.GetNamedItem("id"); got == nil || got.Value != "x" {
		t.Fatalf("expected to find id=x")
	}
	if _, err := m.RemoveNamedItem("id"); err != nil {
		t.Fatalf("unexpected error removing: %v", err)
	}
	if _, err := m.RemoveNamedItem("id"); err == nil {
		t.Fatalf("expected NotFoundError removing a second time")
	}
}

func TestNormalizeMergesAdjacentCommentNodes(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewComment("a"))
	root.AppendChild(NewComment("b"))
	root.AppendChild(NewComment("c"))

	Normalize(root)

	children := root.Children()
	if len(children) != 1 {
		t.Fatalf("expected one merged comment, got %d children", len(children))
	}
	c, ok := children[0].(*Comment)
	if !ok || c.Data != "abc" {
		t.Fatalf("expected merged comment \"abc\", got %v", children[0])
	}
}

func TestNormalizeKeepsTextAndCommentRunsSeparate(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewText("x"))
	root.AppendChild(NewComment("a"))
	root.AppendChild(NewComment(""))
	root.AppendChild(NewComment("b"))
	root.AppendChild(NewText("y"))
	root.AppendChild(NewText("z"))

	Normalize(root)

	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("expected [text, comment, text], got %d children", len(children))
	}
	if tx, ok := children[0].(*Text); !ok || tx.Data != "x" {
		t.Fatalf("expected leading text \"x\", got %v", children[0])
	}
	if c, ok := children[1].(*Comment); !ok || c.Data != "ab" {
		t.Fatalf("expected merged comment \"ab\", got %v", children[1])
	}
	if tx, ok := children[2].(*Text); !ok || tx.Data != "yz" {
		t.Fatalf("expected merged text \"yz\", got %v", children[2])
	}
}

func TestNormalizeDropsEmptyCommentRun(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewComment(""))
	root.AppendChild(NewElement("span"))

	Normalize(root)

	children := root.Children()
	if len(children) != 1 {
		t.Fatalf("expected the empty comment dropped, got %d children", len(children))
	}
	if _, ok := children[0].(*Element); !ok {
		t.Fatalf("expected the span to survive, got %v", children[0])
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewText("x"))
	root.AppendChild(NewText("y"))
	root.AppendChild(NewComment("a"))
	root.AppendChild(NewComment("b"))

	Normalize(root)
	first := append([]Node(nil), root.Children()...)
	Normalize(root)
	second := root.Children()

	if len(first) != len(second) {
		t.Fatalf("second normalize changed child count")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second normalize replaced node at %d", i)
		}
	}
}
