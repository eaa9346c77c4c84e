// Package traversal implements the WHATWG DOM traversal algorithms
// (NodeFilter, NodeIterator, TreeWalker) as small structs driving dom's Node
// interface from outside the dom package, the same shape dom/navigation.go
// uses for sibling/owner-document lookups.
package traversal

import "github.com/arborview/parsekit/dom"

// FilterResult is the verdict a NodeFilter returns for a candidate node.
type FilterResult int

const (
	FilterAccept FilterResult = 1
	FilterReject FilterResult = 2
	FilterSkip   FilterResult = 3
)

// WhatToShow is a bitmask of node types a NodeIterator/TreeWalker should
// consider, mirroring the DOM's SHOW_* constants.
type WhatToShow int

const (
	ShowElement          WhatToShow = 1 << 0
	ShowAttribute        WhatToShow = 1 << 1
	ShowText             WhatToShow = 1 << 2
	ShowCDATASection     WhatToShow = 1 << 3
	ShowComment          WhatToShow = 1 << 7
	ShowDocument         WhatToShow = 1 << 8
	ShowDocumentType     WhatToShow = 1 << 9
	ShowDocumentFragment WhatToShow = 1 << 10
	ShowAll              WhatToShow = -1
)

// NodeFilter narrows a traversal beyond what WhatToShow can express.
type NodeFilter interface {
	AcceptNode(n dom.Node) FilterResult
}

// NodeFilterFunc adapts a function to the NodeFilter interface.
type NodeFilterFunc func(n dom.Node) FilterResult

func (f NodeFilterFunc) AcceptNode(n dom.Node) FilterResult { return f(n) }

func showMask(n dom.Node) WhatToShow {
	switch n.Type() {
	case dom.ElementNodeType:
		return ShowElement
	case dom.AttributeNodeType:
		return ShowAttribute
	case dom.TextNodeType:
		return ShowText
	case dom.CDATASectionNodeType:
		return ShowCDATASection
	case dom.CommentNodeType:
		return ShowComment
	case dom.DocumentNodeType:
		return ShowDocument
	case dom.DoctypeNodeType:
		return ShowDocumentType
	case dom.DocumentFragmentNodeType:
		return ShowDocumentFragment
	default:
		return 0
	}
}

// matches reports whether n passes both the whatToShow mask and the filter.
func matches(n dom.Node, whatToShow WhatToShow, filter NodeFilter) bool {
	if whatToShow != ShowAll && whatToShow&showMask(n) == 0 {
		return false
	}
	if filter == nil {
		return true
	}
	return filter.AcceptNode(n) == FilterAccept
}
