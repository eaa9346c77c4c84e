package traversal

import "github.com/arborview/parsekit/dom"

// NodeIterator produces the nodes of a subtree in document order, filtered by
// whatToShow and an optional NodeFilter, per the DOM's NodeIterator.
type NodeIterator struct {
	root       dom.Node
	whatToShow WhatToShow
	filter     NodeFilter

	reference     dom.Node
	pointerBefore bool
}

// NewNodeIterator creates a NodeIterator rooted at root.
func NewNodeIterator(root dom.Node, whatToShow WhatToShow, filter NodeFilter) *NodeIterator {
	return &NodeIterator{
		root:          root,
		whatToShow:    whatToShow,
		filter:        filter,
		reference:     root,
		pointerBefore: true,
	}
}

// NextNode returns the next matching descendant of the root in document
// order, or nil if the iterator has reached the end of the subtree.
func (it *NodeIterator) NextNode() dom.Node {
	node := it.reference
	beforeNode := it.pointerBefore
	for {
		if !beforeNode {
			next := firstChildOf(node)
			if next == nil {
				for node != it.root {
					sib := dom.NextSibling(node)
					if sib != nil {
						next = sib
						break
					}
					node = node.Parent()
					if node == nil {
						break
					}
				}
			}
			if next == nil {
				return nil
			}
			node = next
		} else {
			beforeNode = false
			if node == it.root {
				// The root itself is not produced; iteration covers its descendants.
				continue
			}
		}
		if matches(node, it.whatToShow, it.filter) {
			it.reference = node
			it.pointerBefore = false
			return node
		}
	}
}

// PreviousNode returns the previous matching node in document order, or nil
// if the iterator is at the start of the subtree.
func (it *NodeIterator) PreviousNode() dom.Node {
	node := it.reference
	beforeNode := it.pointerBefore
	for {
		if beforeNode {
			if node == it.root {
				return nil
			}
			var prev dom.Node
			if sib := dom.PreviousSibling(node); sib != nil {
				prev = lastDescendantOf(sib)
			} else {
				prev = node.Parent()
			}
			if prev == nil {
				return nil
			}
			node = prev
		} else {
			beforeNode = true
		}
		if matches(node, it.whatToShow, it.filter) {
			it.reference = node
			it.pointerBefore = true
			return node
		}
	}
}

func firstChildOf(n dom.Node) dom.Node {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func lastDescendantOf(n dom.Node) dom.Node {
	for {
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		n = children[len(children)-1]
	}
}
