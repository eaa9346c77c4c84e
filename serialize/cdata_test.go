package serialize

import (
	"strings"
	"testing"

	"github.com/arborview/parsekit/dom"
)

func TestSerializeCDATASection(t *testing.T) {
	el := dom.NewElementNS("svg", dom.NamespaceSVG)
	el.AppendChild(dom.NewCDATASection("x < y && y > z"))

	out := ToHTML(el, Options{})
	if !strings.Contains(out, "<![CDATA[x < y && y > z]]>") {
		t.Fatalf("expected CDATA wrapper in output, got %q", out)
	}
}

func TestSerializeDocumentFragmentChildren(t *testing.T) {
	frag := dom.NewDocumentFragment()
	frag.AppendChild(dom.NewElement("b"))
	frag.AppendChild(dom.NewText("tail"))

	out := ToHTML(frag, Options{})
	if !strings.Contains(out, "<b></b>") || !strings.Contains(out, "tail") {
		t.Fatalf("expected fragment children serialized in order, got %q", out)
	}
}
