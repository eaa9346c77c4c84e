package dom

import "fmt"

// DOMError is the typed error family raised by the mutation and lookup
// operations DOM core algorithms define (insert_before, append_child,
// replace_child, remove_child, clone_node, element/attribute factories).
// Name mirrors the WHATWG DOM exception name so callers can match on it.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// newDOMError builds a DOMError, formatting Message from format/args.
func newDOMError(name, format string, args ...interface{}) *DOMError {
	return &DOMError{Name: name, Message: fmt.Sprintf(format, args...)}
}

// ErrHierarchyRequest reports that inserting a node would violate the tree's
// structural constraints (inserting a node into itself or its own descendant,
// or inserting a second DocumentType/root element into a Document).
func ErrHierarchyRequest(detail string) *DOMError {
	return newDOMError("HierarchyRequestError", detail)
}

// ErrNotFound reports that a reference child passed to remove_child or
// replace_child is not in fact a child of the node it was given on.
func ErrNotFound(detail string) *DOMError {
	return newDOMError("NotFoundError", detail)
}

// ErrInvalidCharacter reports a tag, attribute, or other name that does not
// match the Name/QName XML production required of it.
func ErrInvalidCharacter(detail string) *DOMError {
	return newDOMError("InvalidCharacterError", detail)
}

// ErrNamespace reports a namespace/qualified-name combination that is not
// well-formed per the DOM's namespace validation algorithm (e.g. a prefixed
// name with no namespace, or the "xml"/"xmlns" prefixes misapplied).
func ErrNamespace(detail string) *DOMError {
	return newDOMError("NamespaceError", detail)
}
