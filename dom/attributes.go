package dom

import (
	"strings"
)

// Attribute represents a single HTML attribute.
type Attribute struct {
	// Namespace is the attribute namespace (usually empty for HTML attributes).
	Namespace string

	// Name is the attribute name (lowercase for HTML attributes).
	Name string

	// Value is the attribute value.
	Value string
}

// Attributes holds a collection of attributes for an element.
// Attributes are stored in insertion order and accessed case-insensitively for HTML.
type Attributes struct {
	items []Attribute
}

// NewAttributes creates a new empty Attributes collection.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Get returns the value of an attribute by name.
// For HTML attributes, the lookup is case-insensitive.
// Returns the value and true if found, or empty string and false if not.
func (a *Attributes) Get(name string) (string, bool) {
	lowerName := strings.ToLower(name)
	for _, attr := range a.items {
		if strings.ToLower(attr.Name) == lowerName && attr.Namespace == "" {
			return attr.Value, true
		}
	}
	return "", false
}

// GetNS returns the value of a namespaced attribute.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	for _, attr := range a.items {
		if attr.Namespace == namespace && attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set sets or updates an attribute value.
// For HTML attributes, callers should pass a lowercase name (the tokenizer already does).
func (a *Attributes) Set(name, value string) {
	a.SetNS("", strings.ToLower(name), value)
}

// SetNS sets or updates a namespaced attribute value.
func (a *Attributes) SetNS(namespace, name, value string) {
	// Try to update existing attribute
	for i := range a.items {
		if a.items[i].Namespace == namespace && strings.EqualFold(a.items[i].Name, name) {
			a.items[i].Value = value
			return
		}
	}

	// Add new attribute
	a.items = append(a.items, Attribute{
		Namespace: namespace,
		Name:      name,
		Value:     value,
	})
}

// SetValidated sets an attribute after validating name against the XML Name
// production, returning InvalidCharacterError for a caller (e.g. a NamedNodeMap
// consumer) that needs setAttribute's validation rather than the tokenizer's
// trust-the-input Set.
func (a *Attributes) SetValidated(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	a.Set(name, value)
	return nil
}

// Has returns true if an attribute with the given name exists.
func (a *Attributes) Has(name string) bool {
	_, found := a.Get(name)
	return found
}

// HasNS returns true if a namespaced attribute exists.
func (a *Attributes) HasNS(namespace, name string) bool {
	_, found := a.GetNS(namespace, name)
	return found
}

// Remove removes an attribute by name.
func (a *Attributes) Remove(name string) {
	a.RemoveNS("", name)
}

// RemoveNS removes a namespaced attribute.
func (a *Attributes) RemoveNS(namespace, name string) {
	lowerName := strings.ToLower(name)
	for i := range a.items {
		if a.items[i].Namespace == namespace && strings.ToLower(a.items[i].Name) == lowerName {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

// All returns all attributes in insertion order.
func (a *Attributes) All() []Attribute {
	result := make([]Attribute, len(a.items))
	copy(result, a.items)
	return result
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.items)
}

// Clone creates a copy of the attributes.
func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{
		items: make([]Attribute, len(a.items)),
	}
	copy(clone.items, a.items)
	return clone
}

// NamedNodeMap is the ordered, name-indexed attribute collection exposed on
// Element.Attributes(), implementing the DOM's NamedNodeMap interface over
// the same underlying Attributes storage the tree builder populates.
type NamedNodeMap struct {
	owner *Attributes
}

// NewNamedNodeMap wraps attrs as a NamedNodeMap.
func NewNamedNodeMap(attrs *Attributes) *NamedNodeMap {
	return &NamedNodeMap{owner: attrs}
}

// Length returns the number of attributes.
func (m *NamedNodeMap) Length() int {
	return m.owner.Len()
}

// Item returns the attribute at position index in insertion order, or nil if
// index is out of range.
func (m *NamedNodeMap) Item(index int) *Attribute {
	items := m.owner.All()
	if index < 0 || index >= len(items) {
		return nil
	}
	return &items[index]
}

// GetNamedItem returns the attribute with the given name, or nil if absent.
func (m *NamedNodeMap) GetNamedItem(name string) *Attribute {
	v, ok := m.owner.Get(name)
	if !ok {
		return nil
	}
	return &Attribute{Name: name, Value: v}
}

// GetNamedItemNS returns the attribute with the given namespace and local
// name, or nil if absent.
func (m *NamedNodeMap) GetNamedItemNS(namespace, localName string) *Attribute {
	v, ok := m.owner.GetNS(namespace, localName)
	if !ok {
		return nil
	}
	return &Attribute{Namespace: namespace, Name: localName, Value: v}
}

// SetNamedItem sets attr by name, validating attr.Name as an XML Name.
// Returns the previous attribute of the same name, if any.
func (m *NamedNodeMap) SetNamedItem(attr Attribute) (*Attribute, error) {
	prev := m.GetNamedItemNS(attr.Namespace, attr.Name)
	if err := ValidateName(attr.Name); err != nil {
		return nil, err
	}
	m.owner.SetNS(attr.Namespace, attr.Name, attr.Value)
	return prev, nil
}

// SetNode is an alias for SetNamedItem, matching the legacy DOM Level 1
// naming some implementations still expose alongside SetNamedItem.
func (m *NamedNodeMap) SetNode(attr Attribute) (*Attribute, error) {
	return m.SetNamedItem(attr)
}

// RemoveNamedItem removes the attribute with the given name, returning
// NotFoundError if it was not present.
func (m *NamedNodeMap) RemoveNamedItem(name string) (*Attribute, error) {
	prev := m.GetNamedItem(name)
	if prev == nil {
		return nil, ErrNotFound("no attribute named \"" + name + "\"")
	}
	m.owner.Remove(name)
	return prev, nil
}

// RemoveItem removes the attribute at position index, returning
// NotFoundError if index is out of range.
func (m *NamedNodeMap) RemoveItem(index int) (*Attribute, error) {
	item := m.Item(index)
	if item == nil {
		return nil, ErrNotFound("no attribute at index")
	}
	m.owner.RemoveNS(item.Namespace, item.Name)
	return item, nil
}

// RemoveNode removes attr by identity (namespace+name+value match),
// returning NotFoundError if no matching attribute is present.
func (m *NamedNodeMap) RemoveNode(attr Attribute) error {
	existing := m.GetNamedItemNS(attr.Namespace, attr.Name)
	if existing == nil || existing.Value != attr.Value {
		return ErrNotFound("attribute not present in this map")
	}
	m.owner.RemoveNS(attr.Namespace, attr.Name)
	return nil
}
