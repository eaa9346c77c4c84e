package traversal

import "github.com/arborview/parsekit/dom"

// TreeWalker navigates a subtree, skipping nodes rejected by whatToShow or
// the filter and descending past (but never returning) nodes the filter
// marks FilterSkip, per the DOM's TreeWalker.
type TreeWalker struct {
	root       dom.Node
	whatToShow WhatToShow
	filter     NodeFilter
	current    dom.Node
}

// NewTreeWalker creates a TreeWalker rooted at root, with current initially
// set to root.
func NewTreeWalker(root dom.Node, whatToShow WhatToShow, filter NodeFilter) *TreeWalker {
	return &TreeWalker{root: root, whatToShow: whatToShow, filter: filter, current: root}
}

// CurrentNode returns the walker's current node.
func (w *TreeWalker) CurrentNode() dom.Node {
	return w.current
}

// SetCurrentNode moves the walker to n without checking that n passes the
// filter, matching the DOM's unchecked currentNode setter.
func (w *TreeWalker) SetCurrentNode(n dom.Node) {
	w.current = n
}

func (w *TreeWalker) verdict(n dom.Node) FilterResult {
	if w.whatToShow != ShowAll && w.whatToShow&showMask(n) == 0 {
		return FilterSkip
	}
	if w.filter == nil {
		return FilterAccept
	}
	return w.filter.AcceptNode(n)
}

// ParentNode moves to the closest ancestor node that passes the filter and
// is inside root, or returns nil (leaving current unchanged) if there is
// none.
func (w *TreeWalker) ParentNode() dom.Node {
	node := w.current
	for node != w.root {
		node = node.Parent()
		if node == nil {
			return nil
		}
		if w.verdict(node) == FilterAccept {
			w.current = node
			return node
		}
	}
	return nil
}

// FirstChild moves to the first matching child of current, descending past
// rejected/skipped nodes' own children as needed, per traverseChildren(first).
func (w *TreeWalker) FirstChild() dom.Node {
	return w.traverseChildren(true)
}

// LastChild moves to the last matching child of current.
func (w *TreeWalker) LastChild() dom.Node {
	return w.traverseChildren(false)
}

func (w *TreeWalker) traverseChildren(first bool) dom.Node {
	node := w.current
	for {
		children := node.Children()
		if len(children) == 0 {
			return nil
		}
		if first {
			node = children[0]
		} else {
			node = children[len(children)-1]
		}
		switch w.verdict(node) {
		case FilterAccept:
			w.current = node
			return node
		case FilterSkip:
			continue
		case FilterReject:
			if sib := w.siblingOf(node, first); sib != nil {
				node = sib
				continue
			}
			return nil
		}
	}
}

func (w *TreeWalker) siblingOf(n dom.Node, next bool) dom.Node {
	if next {
		return dom.NextSibling(n)
	}
	return dom.PreviousSibling(n)
}

// NextSibling moves to the next matching sibling of current, per the DOM's
// traverseSiblings(next).
func (w *TreeWalker) NextSibling() dom.Node {
	return w.traverseSiblings(true)
}

// PreviousSibling moves to the previous matching sibling of current.
func (w *TreeWalker) PreviousSibling() dom.Node {
	return w.traverseSiblings(false)
}

func (w *TreeWalker) traverseSiblings(next bool) dom.Node {
	node := w.current
	if node == w.root {
		return nil
	}
	for {
		var sib dom.Node
		if next {
			sib = dom.NextSibling(node)
		} else {
			sib = dom.PreviousSibling(node)
		}
		for sib == nil {
			parent := node.Parent()
			if parent == nil || parent == w.root || !dom.Contains(w.root, parent) {
				return nil
			}
			node = parent
			if next {
				sib = dom.NextSibling(node)
			} else {
				sib = dom.PreviousSibling(node)
			}
		}
		node = sib
		switch w.verdict(node) {
		case FilterAccept:
			w.current = node
			return node
		case FilterReject:
			continue
		case FilterSkip:
			if child := w.descendInto(node, next); child != nil {
				w.current = child
				return child
			}
			continue
		}
	}
}

func (w *TreeWalker) descendInto(node dom.Node, first bool) dom.Node {
	for {
		children := node.Children()
		if len(children) == 0 {
			return nil
		}
		if first {
			node = children[0]
		} else {
			node = children[len(children)-1]
		}
		switch w.verdict(node) {
		case FilterAccept:
			return node
		case FilterSkip:
			if child := w.descendInto(node, first); child != nil {
				return child
			}
			return nil
		case FilterReject:
			return nil
		}
	}
}

// NextNode moves to the next matching node in document order within root.
func (w *TreeWalker) NextNode() dom.Node {
	node := w.current
	for {
		if child := w.descendInto(node, true); child != nil {
			w.current = child
			return child
		}
		if node == w.root {
			return nil
		}
		for {
			sib := dom.NextSibling(node)
			if sib != nil {
				switch w.verdict(sib) {
				case FilterAccept:
					w.current = sib
					return sib
				case FilterSkip:
					if child := w.descendInto(sib, true); child != nil {
						w.current = child
						return child
					}
					node = sib
					continue
				case FilterReject:
					node = sib
					continue
				}
			}
			node = node.Parent()
			if node == nil || node == w.root {
				return nil
			}
			break
		}
	}
}

// PreviousNode moves to the previous matching node in document order within
// root.
func (w *TreeWalker) PreviousNode() dom.Node {
	node := w.current
	for node != w.root {
		sib := dom.PreviousSibling(node)
		for sib != nil {
			verdict := w.verdict(sib)
			candidate := sib
			for verdict != FilterReject {
				if last := w.lastAcceptableDescendant(candidate); last != nil {
					w.current = last
					return last
				}
				if verdict == FilterAccept {
					w.current = candidate
					return candidate
				}
				sib2 := dom.PreviousSibling(candidate)
				if sib2 == nil {
					break
				}
				candidate = sib2
				verdict = w.verdict(candidate)
			}
			sib = dom.PreviousSibling(candidate)
		}
		parent := node.Parent()
		if parent == nil || parent == w.root {
			if parent == w.root && w.verdict(parent) == FilterAccept {
				w.current = parent
				return parent
			}
			return nil
		}
		if w.verdict(parent) == FilterAccept {
			w.current = parent
			return parent
		}
		node = parent
	}
	return nil
}

func (w *TreeWalker) lastAcceptableDescendant(n dom.Node) dom.Node {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	last := children[len(children)-1]
	if deeper := w.lastAcceptableDescendant(last); deeper != nil {
		return deeper
	}
	if w.verdict(last) == FilterAccept {
		return last
	}
	return nil
}
