package dom

import (
	"errors"
	"testing"
)

func TestCreateElementFoldsCaseForHTMLDocuments(t *testing.T) {
	doc := NewDocument()
	el, err := doc.CreateElement("DIV")
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	if el.TagName != "div" {
		t.Fatalf("expected lowercase tag name, got %q", el.TagName)
	}
	if el.Namespace != NamespaceHTML {
		t.Fatalf("expected HTML namespace, got %q", el.Namespace)
	}
	if el.Parent() != nil {
		t.Fatalf("factory elements must be created detached")
	}
}

func TestCreateElementPreservesCaseForXMLDocuments(t *testing.T) {
	doc := NewDocument()
	doc.Kind = XMLDocument
	el, err := doc.CreateElement("viewBox")
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	if el.TagName != "viewBox" {
		t.Fatalf("expected case preserved, got %q", el.TagName)
	}
}

func TestCreateElementRejectsInvalidNames(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"", "1div", "di v", "di<v"} {
		if _, err := doc.CreateElement(name); err == nil {
			t.Fatalf("expected error for name %q", name)
		} else {
			var domErr *DOMError
			if !errors.As(err, &domErr) || domErr.Name != "InvalidCharacterError" {
				t.Fatalf("expected InvalidCharacterError for %q, got %v", name, err)
			}
		}
	}
}

func TestCreateElementNSValidatesNamespaceRules(t *testing.T) {
	doc := NewDocument()
	if _, err := doc.CreateElementNS("", "svg:rect"); err == nil {
		t.Fatalf("prefixed name with empty namespace must fail")
	}
	if _, err := doc.CreateElementNS(NamespaceSVG, "xml:rect"); err == nil {
		t.Fatalf("xml prefix outside the XML namespace must fail")
	}
	el, err := doc.CreateElementNS(NamespaceSVG, "svg:rect")
	if err != nil {
		t.Fatalf("CreateElementNS: %v", err)
	}
	if el.Prefix() != "svg" || el.LocalName() != "rect" {
		t.Fatalf("expected svg:rect split, got prefix=%q local=%q", el.Prefix(), el.LocalName())
	}
}

func TestCreateCDATASectionRequiresXMLDocument(t *testing.T) {
	doc := NewDocument()
	if _, err := doc.CreateCDATASection("data"); err == nil {
		t.Fatalf("CDATA sections must be rejected on HTML documents")
	}

	doc.Kind = XMLDocument
	cd, err := doc.CreateCDATASection("x < y")
	if err != nil {
		t.Fatalf("CreateCDATASection: %v", err)
	}
	if cd.Data != "x < y" {
		t.Fatalf("unexpected data %q", cd.Data)
	}
	if _, err := doc.CreateCDATASection("a ]]> b"); err == nil {
		t.Fatalf("data containing ]]> must be rejected")
	}
}

func TestCreateAttributeFoldsCaseAndValidates(t *testing.T) {
	doc := NewDocument()
	attr, err := doc.CreateAttribute("CLASS")
	if err != nil {
		t.Fatalf("CreateAttribute: %v", err)
	}
	if attr.Name != "class" {
		t.Fatalf("expected folded name, got %q", attr.Name)
	}
	if _, err := doc.CreateAttribute("bad name"); err == nil {
		t.Fatalf("expected error for invalid attribute name")
	}
	if _, err := doc.CreateAttributeNS(NamespaceXLink, "xlink:href"); err != nil {
		t.Fatalf("CreateAttributeNS: %v", err)
	}
	if _, err := doc.CreateAttributeNS("", "xlink:href"); err == nil {
		t.Fatalf("prefixed attribute with no namespace must fail")
	}
}

func buildFactoryTestTree() (*Document, *Element, *Element) {
	doc := NewDocument()
	html := NewElement("html")
	body := NewElement("body")
	div := NewElement("div")
	div.SetAttr("id", "x")
	span := NewElement("span")
	doc.AppendChild(html)
	html.AppendChild(body)
	body.AppendChild(div)
	div.AppendChild(span)
	return doc, div, span
}

func TestGetElementByID(t *testing.T) {
	doc, div, _ := buildFactoryTestTree()
	if got := doc.GetElementByID("x"); got != div {
		t.Fatalf("expected the div, got %v", got)
	}
	if got := doc.GetElementByID("missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %v", got)
	}
}

func TestGetElementsByTagName(t *testing.T) {
	doc, div, span := buildFactoryTestTree()

	all := doc.GetElementsByTagName("*")
	if len(all) != 4 {
		t.Fatalf("expected 4 elements for *, got %d", len(all))
	}
	if all[2] != div || all[3] != span {
		t.Fatalf("expected document-order results ending [div, span]")
	}

	divs := doc.GetElementsByTagName("DIV")
	if len(divs) != 1 || divs[0] != div {
		t.Fatalf("HTML tag name lookup must be case-insensitive")
	}
}

func TestGetElementsByTagNameNS(t *testing.T) {
	doc, _, _ := buildFactoryTestTree()
	svg := NewElementNS("rect", NamespaceSVG)
	doc.DocumentElement().AppendChild(svg)

	rects := doc.GetElementsByTagNameNS(NamespaceSVG, "rect")
	if len(rects) != 1 || rects[0] != svg {
		t.Fatalf("expected the svg rect, got %v", rects)
	}
	anyNS := doc.GetElementsByTagNameNS("*", "rect")
	if len(anyNS) != 1 {
		t.Fatalf("expected 1 rect for any-namespace lookup, got %d", len(anyNS))
	}
	none := doc.GetElementsByTagNameNS(NamespaceMathML, "rect")
	if len(none) != 0 {
		t.Fatalf("expected no MathML rects, got %d", len(none))
	}
}
