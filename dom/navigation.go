package dom

import "strings"

// PreviousSibling returns the sibling immediately before n in its parent's
// child list, or nil if n has no parent or is the first child. It is a
// package function rather than a Node method so DocumentType/Text/Comment
// don't each need their own sibling bookkeeping: the parent's child slice is
// already the single source of truth invariant I2 requires.
func PreviousSibling(n Node) Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	children := parent.Children()
	for i, c := range children {
		if c == n {
			if i == 0 {
				return nil
			}
			return children[i-1]
		}
	}
	return nil
}

// NextSibling returns the sibling immediately after n in its parent's child
// list, or nil if n has no parent or is the last child.
func NextSibling(n Node) Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	children := parent.Children()
	for i, c := range children {
		if c == n {
			if i == len(children)-1 {
				return nil
			}
			return children[i+1]
		}
	}
	return nil
}

// OwnerDocument walks n's ancestor chain and returns the enclosing Document,
// or nil if n is not (yet) attached under one. A Document is its own owner.
func OwnerDocument(n Node) *Document {
	if d, ok := n.(*Document); ok {
		return d
	}
	cur := n.Parent()
	for cur != nil {
		if d, ok := cur.(*Document); ok {
			return d
		}
		cur = cur.Parent()
	}
	return nil
}

// Contains reports whether other is n itself or a descendant of n.
func Contains(n, other Node) bool {
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

// IsSameNode reports whether a and b are the identical node (pointer
// identity), as opposed to IsEqualNode's structural comparison.
func IsSameNode(a, b Node) bool {
	return a == b
}

// IsEqualNode reports whether a and b have the same type, the same
// attributes (for elements), the same data (for text/comment), and recursively
// equal children in the same order.
func IsEqualNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case *Element:
		bv := b.(*Element)
		if av.TagName != bv.TagName || av.Namespace != bv.Namespace {
			return false
		}
		if !attributesEqual(av.Attributes, bv.Attributes) {
			return false
		}
	case *Text:
		if av.Data != b.(*Text).Data {
			return false
		}
	case *CDATASection:
		if av.Data != b.(*CDATASection).Data {
			return false
		}
	case *Comment:
		if av.Data != b.(*Comment).Data {
			return false
		}
	case *DocumentType:
		bv := b.(*DocumentType)
		if av.Name != bv.Name || av.PublicID != bv.PublicID || av.SystemID != bv.SystemID {
			return false
		}
	}

	achildren, bchildren := a.Children(), b.Children()
	if len(achildren) != len(bchildren) {
		return false
	}
	for i := range achildren {
		if !IsEqualNode(achildren[i], bchildren[i]) {
			return false
		}
	}
	return true
}

func attributesEqual(a, b *Attributes) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, attr := range a.All() {
		v, ok := b.GetNS(attr.Namespace, attr.Name)
		if !ok || v != attr.Value {
			return false
		}
	}
	return true
}

// DocumentPosition is the bitmask CompareDocumentPosition returns, mirroring
// the DOM's Node.compareDocumentPosition constants.
type DocumentPosition int

const (
	PositionDisconnected           DocumentPosition = 1
	PositionPreceding              DocumentPosition = 2
	PositionFollowing              DocumentPosition = 4
	PositionContains               DocumentPosition = 8
	PositionContainedBy            DocumentPosition = 16
	PositionImplementationSpecific DocumentPosition = 32
)

// CompareDocumentPosition reports how other is positioned relative to n.
func CompareDocumentPosition(n, other Node) DocumentPosition {
	if n == other {
		return 0
	}
	if Contains(n, other) {
		return PositionContainedBy | PositionFollowing
	}
	if Contains(other, n) {
		return PositionContains | PositionPreceding
	}
	nRoot, nPath := ancestorPath(n)
	oRoot, oPath := ancestorPath(other)
	if nRoot != oRoot {
		return PositionDisconnected | PositionImplementationSpecific
	}
	// Walk both paths from the common root downward to find the first
	// divergent ancestor siblings, then compare their index in that
	// ancestor's child list.
	i := len(nPath) - 1
	j := len(oPath) - 1
	for i >= 0 && j >= 0 && nPath[i] == oPath[j] {
		i--
		j--
	}
	if i < 0 || j < 0 {
		return PositionDisconnected | PositionImplementationSpecific
	}
	parent := nPath[i].Parent()
	if parent == nil {
		return PositionDisconnected | PositionImplementationSpecific
	}
	children := parent.Children()
	var nIdx, oIdx = -1, -1
	for idx, c := range children {
		if c == nPath[i] {
			nIdx = idx
		}
		if c == oPath[j] {
			oIdx = idx
		}
	}
	if nIdx < oIdx {
		return PositionFollowing
	}
	return PositionPreceding
}

func ancestorPath(n Node) (root Node, path []Node) {
	cur := n
	for cur != nil {
		path = append(path, cur)
		root = cur
		cur = cur.Parent()
	}
	return root, path
}

// TextContent concatenates the Data of every Text and CDATA section
// descendant of n in document order, or returns Data directly for a
// Text/Comment node.
func TextContent(n Node) string {
	if c, ok := n.(*Comment); ok {
		return c.Data
	}
	var sb strings.Builder
	collectTextContent(n, &sb)
	return sb.String()
}

func collectTextContent(n Node, sb *strings.Builder) {
	switch v := n.(type) {
	case *Text:
		sb.WriteString(v.Data)
		return
	case *CDATASection:
		sb.WriteString(v.Data)
		return
	case *Comment:
		return
	}
	for _, c := range n.Children() {
		collectTextContent(c, sb)
	}
}

// Normalize merges each contiguous run of same-kind Text or Comment
// siblings into a single node, drops empty ones, and recurses, implementing
// Node.normalize. CDATA sections are left alone (they are not exclusive
// Text). It is implemented purely in terms of the Node interface
// (RemoveChild/AppendChild) so it applies uniformly to any container node
// without reaching into baseNode's unexported slice.
func Normalize(n Node) {
	children := append([]Node(nil), n.Children()...)
	for _, c := range children {
		Normalize(c)
	}

	var merged []Node
	var runNodes []Node
	var run strings.Builder
	var runKind NodeType
	flushRun := func() {
		switch {
		case runKind == 0 || run.Len() == 0:
			// empty run: dropped
		case len(runNodes) == 1:
			merged = append(merged, runNodes[0])
		case runKind == TextNodeType:
			merged = append(merged, NewText(run.String()))
		default:
			merged = append(merged, NewComment(run.String()))
		}
		run.Reset()
		runNodes = runNodes[:0]
		runKind = 0
	}
	for _, c := range children {
		switch v := c.(type) {
		case *Text:
			if runKind != TextNodeType {
				flushRun()
				runKind = TextNodeType
			}
			run.WriteString(v.Data)
			runNodes = append(runNodes, c)
		case *Comment:
			if runKind != CommentNodeType {
				flushRun()
				runKind = CommentNodeType
			}
			run.WriteString(v.Data)
			runNodes = append(runNodes, c)
		default:
			flushRun()
			merged = append(merged, c)
		}
	}
	flushRun()

	if sameNodeList(children, merged) {
		return
	}
	for _, c := range children {
		n.RemoveChild(c)
	}
	for _, c := range merged {
		n.AppendChild(c)
	}
}

func sameNodeList(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LookupNamespaceURI returns the namespace bound to prefix at node n,
// walking n's ancestor chain and its xmlns/xmlns:* attributes per the DOM's
// locate-a-namespace algorithm. An empty prefix looks up the default
// namespace. Returns "" when the prefix is unbound.
func LookupNamespaceURI(n Node, prefix string) string {
	switch prefix {
	case "xml":
		return NamespaceXML
	case "xmlns":
		return NamespaceXMLNS
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		e, ok := cur.(*Element)
		if !ok {
			continue
		}
		if e.Prefix() == prefix && e.Namespace != "" {
			return e.Namespace
		}
		for _, attr := range e.Attributes.All() {
			if prefix != "" && attr.Name == "xmlns:"+prefix {
				return attr.Value
			}
			if prefix == "" && attr.Name == "xmlns" && attr.Namespace != NamespaceXMLNS {
				return attr.Value
			}
		}
	}
	return ""
}

// LookupPrefix returns a prefix bound to namespace at node n, or "" when
// none is in scope. Per the DOM algorithm, an element whose own namespace
// matches wins first, then xmlns:* declarations on the ancestor chain.
func LookupPrefix(n Node, namespace string) string {
	if namespace == "" {
		return ""
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		e, ok := cur.(*Element)
		if !ok {
			continue
		}
		if e.Namespace == namespace && e.Prefix() != "" {
			return e.Prefix()
		}
		for _, attr := range e.Attributes.All() {
			if strings.HasPrefix(attr.Name, "xmlns:") && attr.Value == namespace {
				return attr.Name[len("xmlns:"):]
			}
		}
	}
	return ""
}

// IsDefaultNamespace reports whether namespace is the default (unprefixed)
// namespace in scope at n.
func IsDefaultNamespace(n Node, namespace string) bool {
	return LookupNamespaceURI(n, "") == namespace
}

// Length implements the DOM's node length: the data length for character
// data nodes, zero for doctype nodes, and the child count otherwise.
func Length(n Node) int {
	switch v := n.(type) {
	case *Text:
		return len([]rune(v.Data))
	case *CDATASection:
		return len([]rune(v.Data))
	case *Comment:
		return len([]rune(v.Data))
	case *DocumentType:
		return 0
	default:
		return len(n.Children())
	}
}
