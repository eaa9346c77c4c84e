package dom

import "strings"

// Factory methods on Document, mirroring the DOM's document.createElement /
// createTextNode / createComment / createAttribute family. Unlike the
// NewElement/NewText constructors the tree builder uses on its own trusted
// token stream, these validate names and honor the document's HTML/XML kind.

// ErrNotSupported reports an operation the document's kind does not allow,
// such as creating a CDATA section on an HTML document.
func ErrNotSupported(detail string) *DOMError {
	return newDOMError("NotSupportedError", detail)
}

// CreateElement creates a detached element in the HTML namespace. For HTML
// documents the local name is folded to lower case; XML documents preserve
// it as given.
func (d *Document) CreateElement(localName string) (*Element, error) {
	if err := ValidateName(localName); err != nil {
		return nil, err
	}
	if d.Kind == HTMLDocument {
		localName = strings.ToLower(localName)
	}
	return NewElementNS(localName, NamespaceHTML), nil
}

// CreateElementNS creates a detached element with a validated namespace and
// qualified name.
func (d *Document) CreateElementNS(namespace, qualifiedName string) (*Element, error) {
	return CreateElementNS(namespace, qualifiedName)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Text {
	return NewText(data)
}

// CreateCDATASection creates a detached CDATA section. HTML documents cannot
// contain CDATA sections, and the data must not contain the "]]>" close
// sequence.
func (d *Document) CreateCDATASection(data string) (*CDATASection, error) {
	if d.Kind == HTMLDocument {
		return nil, ErrNotSupported("CDATA sections are not allowed in HTML documents")
	}
	if strings.Contains(data, "]]>") {
		return nil, ErrInvalidCharacter("CDATA section data must not contain \"]]>\"")
	}
	return NewCDATASection(data), nil
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) *Comment {
	return NewComment(data)
}

// CreateAttribute creates a detached attribute with an empty value. For HTML
// documents the name is folded to lower case.
func (d *Document) CreateAttribute(localName string) (*Attribute, error) {
	if err := ValidateName(localName); err != nil {
		return nil, err
	}
	if d.Kind == HTMLDocument {
		localName = strings.ToLower(localName)
	}
	return &Attribute{Name: localName}, nil
}

// CreateAttributeNS creates a detached attribute with a validated namespace
// and qualified name.
func (d *Document) CreateAttributeNS(namespace, qualifiedName string) (*Attribute, error) {
	if _, _, err := ValidateAndExtract(namespace, qualifiedName); err != nil {
		return nil, err
	}
	return &Attribute{Namespace: namespace, Name: qualifiedName}, nil
}

// GetElementByID returns the first element in document order whose id
// attribute equals id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	return findElementByID(d, id)
}

func findElementByID(n Node, id string) *Element {
	for _, c := range n.Children() {
		if e, ok := c.(*Element); ok && e.ID() == id {
			return e
		}
		if found := findElementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// GetElementsByTagName returns every descendant element whose qualified tag
// name matches name, in document order. The name "*" matches all elements;
// for HTML documents the comparison against HTML-namespace elements is
// case-insensitive.
func (d *Document) GetElementsByTagName(name string) []*Element {
	var out []*Element
	collectByTagName(d, name, d.Kind == HTMLDocument, &out)
	return out
}

func collectByTagName(n Node, name string, htmlDoc bool, out *[]*Element) {
	for _, c := range n.Children() {
		if e, ok := c.(*Element); ok {
			if tagNameMatches(e, name, htmlDoc) {
				*out = append(*out, e)
			}
		}
		collectByTagName(c, name, htmlDoc, out)
	}
}

func tagNameMatches(e *Element, name string, htmlDoc bool) bool {
	if name == "*" {
		return true
	}
	if htmlDoc && e.Namespace == NamespaceHTML {
		return strings.EqualFold(e.TagName, name)
	}
	return e.TagName == name
}

// GetElementsByTagNameNS returns every descendant element matching both the
// namespace and the local name, in document order. "*" matches any namespace
// or any local name respectively.
func (d *Document) GetElementsByTagNameNS(namespace, localName string) []*Element {
	var out []*Element
	collectByTagNameNS(d, namespace, localName, &out)
	return out
}

func collectByTagNameNS(n Node, namespace, localName string, out *[]*Element) {
	for _, c := range n.Children() {
		if e, ok := c.(*Element); ok {
			nsOK := namespace == "*" || e.Namespace == namespace
			nameOK := localName == "*" || e.LocalName() == localName
			if nsOK && nameOK {
				*out = append(*out, e)
			}
		}
		collectByTagNameNS(c, namespace, localName, out)
	}
}
