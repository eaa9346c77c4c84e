package markdown

import "github.com/arborview/parsekit/source"

// Context is the language a parse starts or ends in. A Markdown tokenize
// normally both starts and ends in CtxMarkdown; encountering a `{{...}}`
// escape-to-host marker ends the parse early in CtxNative so an embedder can
// resume parsing the remainder in a different language.
type Context int

const (
	CtxMarkdown Context = iota
	CtxNative
)

// pendingBuffer accumulates the characters of the leaf block currently being
// recognised, speculatively, before its type is certain (e.g. a line that
// might be a setext heading underline, or a table delimiter row).
type pendingBuffer struct {
	position       source.Position
	chars          []rune
	blockLineCount int
	blockFenceType rune
	setextPossible bool
}

func (p *pendingBuffer) reset() {
	p.chars = p.chars[:0]
	p.blockLineCount = 0
	p.blockFenceType = 0
	p.setextPossible = false
}

func (p *pendingBuffer) addLine(line string) {
	if p.blockLineCount > 0 {
		p.chars = append(p.chars, '\n')
	}
	p.chars = append(p.chars, []rune(line)...)
	p.blockLineCount++
}

func (p *pendingBuffer) text() string {
	return string(p.chars)
}

// formattingMarker is one entry of the formatting-marker deque: a pending
// FormattingBegin token awaiting a matching closer, recorded while the
// inline parser scans a leaf block's text. A closer pairs with the nearest
// open marker of the same delimiter and format.
type formattingMarker struct {
	tokenIndex int
	format     FormatKind
	delim      rune
	run        int
}

// listState tracks one currently-open list's bullet style and the
// list-spacing tri-state while its items are being parsed. A blank line
// moves DefaultTight to MaybeLoose; further content belonging to the same
// list confirms Loose, while a blank that turns out to trail the whole list
// leaves it tight.
type listState struct {
	kind    ListKind
	ordered bool
	spacing Spacing
}
