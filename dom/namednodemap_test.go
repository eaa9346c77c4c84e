package dom

import (
	"errors"
	"testing"
)

func mapWithAttrs(t *testing.T) *NamedNodeMap {
	t.Helper()
	el := NewElement("div")
	el.SetAttr("class", "a")
	el.SetAttr("id", "b")
	el.Attributes.SetNS(NamespaceXLink, "href", "target")
	return el.AttributeMap()
}

func TestNamedNodeMapItem(t *testing.T) {
	m := mapWithAttrs(t)

	first := m.Item(0)
	if first == nil || first.Name != "class" || first.Value != "a" {
		t.Fatalf("Item(0) = %v, want class=a", first)
	}
	last := m.Item(2)
	if last == nil || last.Name != "href" || last.Namespace != NamespaceXLink {
		t.Fatalf("Item(2) = %v, want xlink href", last)
	}
	if m.Item(-1) != nil || m.Item(3) != nil {
		t.Fatalf("out-of-range Item must return nil")
	}
}

func TestNamedNodeMapGetNamedItemNS(t *testing.T) {
	m := mapWithAttrs(t)

	attr := m.GetNamedItemNS(NamespaceXLink, "href")
	if attr == nil || attr.Value != "target" {
		t.Fatalf("GetNamedItemNS = %v, want target", attr)
	}
	if m.GetNamedItemNS(NamespaceSVG, "href") != nil {
		t.Fatalf("wrong namespace must not match")
	}
	if m.GetNamedItemNS("", "class") == nil {
		t.Fatalf("empty-namespace lookup must find plain attributes")
	}
}

func TestNamedNodeMapSetNode(t *testing.T) {
	m := mapWithAttrs(t)

	prev, err := m.SetNode(Attribute{Name: "class", Value: "updated"})
	if err != nil {
		t.Fatalf("SetNode: %v", err)
	}
	if prev == nil || prev.Value != "a" {
		t.Fatalf("SetNode previous = %v, want the replaced value", prev)
	}
	if got := m.GetNamedItem("class"); got == nil || got.Value != "updated" {
		t.Fatalf("SetNode must update in place, got %v", got)
	}
	if m.Length() != 3 {
		t.Fatalf("replacement must not grow the map, length = %d", m.Length())
	}

	if _, err := m.SetNode(Attribute{Name: "bad name"}); err == nil {
		t.Fatalf("SetNode must validate the attribute name")
	}
}

func TestNamedNodeMapRemoveItem(t *testing.T) {
	m := mapWithAttrs(t)

	removed, err := m.RemoveItem(1)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if removed.Name != "id" {
		t.Fatalf("RemoveItem(1) = %v, want id", removed)
	}
	if m.Length() != 2 {
		t.Fatalf("length after removal = %d, want 2", m.Length())
	}

	_, err = m.RemoveItem(5)
	var domErr *DOMError
	if !errors.As(err, &domErr) || domErr.Name != "NotFoundError" {
		t.Fatalf("out-of-range RemoveItem must return NotFoundError, got %v", err)
	}
}

func TestNamedNodeMapRemoveNode(t *testing.T) {
	m := mapWithAttrs(t)

	if err := m.RemoveNode(Attribute{Name: "class", Value: "a"}); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if m.GetNamedItem("class") != nil {
		t.Fatalf("attribute must be gone after RemoveNode")
	}

	err := m.RemoveNode(Attribute{Name: "id", Value: "wrong-value"})
	var domErr *DOMError
	if !errors.As(err, &domErr) || domErr.Name != "NotFoundError" {
		t.Fatalf("value mismatch must return NotFoundError, got %v", err)
	}
}

func TestQualifiedTagName(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	if got := div.QualifiedTagName(doc); got != "DIV" {
		t.Fatalf("HTML element tag name = %q, want DIV", got)
	}

	svg := NewElementNS("svg:rect", NamespaceSVG)
	if got := svg.QualifiedTagName(doc); got != "svg:rect" {
		t.Fatalf("foreign element tag name = %q, want exact", got)
	}

	xmlDoc := NewDocument()
	xmlDoc.Kind = XMLDocument
	el := NewElementNS("Para", NamespaceHTML)
	if got := el.QualifiedTagName(xmlDoc); got != "Para" {
		t.Fatalf("XML document tag name = %q, want exact", got)
	}
}
