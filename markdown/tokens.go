// Package markdown implements the Markdown tokenization and Markdown→HTML
// bridge stages of the parsing pipeline: block/inline recognition of
// CommonMark constructs plus the extensions this repository supports
// (task lists, footnotes, definition lists, tables, block IDs), with
// speculative parsing and rollback for tables and HTML blocks.
package markdown

// TokenKind is the tag of the Markdown token sum type.
type TokenKind int

const (
	// Character is a run of literal text within a leaf block.
	Character TokenKind = iota
	// LineBreak is a hard line break (two or more trailing spaces).
	LineBreak
	// HorizontalRule is a thematic break (`---`, `***`, `___`).
	HorizontalRule

	// FormattingBegin opens an inline span (emphasis, strong, code span).
	FormattingBegin
	// FormattingEnd closes the most recently opened matching inline span.
	FormattingEnd

	// HeadingBegin/HeadingEnd bracket an ATX or setext heading's inline content.
	HeadingBegin
	HeadingEnd
	// ParagraphBegin/ParagraphEnd bracket a paragraph's inline content.
	ParagraphBegin
	ParagraphEnd
	// BlockquoteBegin/BlockquoteEnd bracket a blockquote's block content.
	BlockquoteBegin
	BlockquoteEnd
	// ListBegin/ListEnd bracket a list's items.
	ListBegin
	ListEnd
	// ListItemBegin/ListItemEnd bracket one list item's block content.
	ListItemBegin
	ListItemEnd
	// CodeBlockBegin/CodeBlockEnd bracket a fenced or indented code block's
	// literal text.
	CodeBlockBegin
	CodeBlockEnd
	// HtmlBlockBegin/HtmlBlockEnd bracket a raw HTML block's literal text.
	HtmlBlockBegin
	HtmlBlockEnd
	// TableBegin/TableEnd bracket a table.
	TableBegin
	TableEnd
	// TableRowBegin/TableRowEnd bracket one table row.
	TableRowBegin
	TableRowEnd
	// TableHeadingBegin/TableHeadingEnd bracket one header cell's inline content.
	TableHeadingBegin
	TableHeadingEnd
	// TableCellBegin/TableCellEnd bracket one body cell's inline content.
	TableCellBegin
	TableCellEnd
	// HyperlinkBegin/HyperlinkEnd bracket a link's inline content; the link
	// target lives on the Begin token's Target field.
	HyperlinkBegin
	HyperlinkEnd
	// Image is a leaf inline token; Data carries the alt text, Target the src.
	Image
	// FootnoteRef is a leaf inline token referencing a footnote by label.
	FootnoteRef
	// DLTitleBegin/DLTitleEnd bracket a definition-list term.
	DLTitleBegin
	DLTitleEnd
	// DLDefinitionBegin/DLDefinitionEnd bracket a definition-list definition.
	DLDefinitionBegin
	DLDefinitionEnd

	// EOF marks the end of the token stream.
	EOF
)

//go:generate stringer -type=TokenKind

func (k TokenKind) String() string {
	names := map[TokenKind]string{
		Character: "Character", LineBreak: "LineBreak", HorizontalRule: "HorizontalRule",
		FormattingBegin: "FormattingBegin", FormattingEnd: "FormattingEnd",
		HeadingBegin: "HeadingBegin", HeadingEnd: "HeadingEnd",
		ParagraphBegin: "ParagraphBegin", ParagraphEnd: "ParagraphEnd",
		BlockquoteBegin: "BlockquoteBegin", BlockquoteEnd: "BlockquoteEnd",
		ListBegin: "ListBegin", ListEnd: "ListEnd",
		ListItemBegin: "ListItemBegin", ListItemEnd: "ListItemEnd",
		CodeBlockBegin: "CodeBlockBegin", CodeBlockEnd: "CodeBlockEnd",
		HtmlBlockBegin: "HtmlBlockBegin", HtmlBlockEnd: "HtmlBlockEnd",
		TableBegin: "TableBegin", TableEnd: "TableEnd",
		TableRowBegin: "TableRowBegin", TableRowEnd: "TableRowEnd",
		TableHeadingBegin: "TableHeadingBegin", TableHeadingEnd: "TableHeadingEnd",
		TableCellBegin: "TableCellBegin", TableCellEnd: "TableCellEnd",
		HyperlinkBegin: "HyperlinkBegin", HyperlinkEnd: "HyperlinkEnd",
		Image: "Image", FootnoteRef: "FootnoteRef",
		DLTitleBegin: "DLTitleBegin", DLTitleEnd: "DLTitleEnd",
		DLDefinitionBegin: "DLDefinitionBegin", DLDefinitionEnd: "DLDefinitionEnd",
		EOF: "EOF",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "Unknown"
}

// FormatKind distinguishes the inline span a FormattingBegin/End pair opens.
type FormatKind int

const (
	Emphasis FormatKind = iota
	Strong
	CodeSpan
)

// ListKind distinguishes the bullet style of a ListBegin token.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
	TaskList
)

// Spacing is the list-spacing tri-state tracked while a list is open.
type Spacing int

const (
	DefaultTight Spacing = iota
	MaybeLoose
	Loose
)

// Token is the Markdown tokenizer's output unit: a tagged variant carrying
// kind-specific payload fields. It has Line/Col fields for a source
// line/column, which the tokenizer leaves at zero. Unused fields for a given
// Kind are left at their zero value, mirroring how tokenizer.Token does it
// for HTML5.
type Token struct {
	Kind TokenKind
	Line int
	Col  int

	// Data carries literal text for Character (including the body of a code
	// or HTML block, on the Character token between its Begin/End tokens),
	// alt text for Image, and the footnote label for FootnoteRef.
	Data string

	// Target carries a link/image destination (Hyperlink*, Image) or a
	// fenced code block's info-string language tag (CodeBlockBegin).
	Target string

	// Title carries a link/image title (Hyperlink*, Image).
	Title string

	// ID carries a block ID (`{#id}`) attached to a Heading or Paragraph.
	ID string

	// HeadingLevel is 1-6 for HeadingBegin.
	HeadingLevel int

	// Format is the inline span kind for FormattingBegin/End.
	Format FormatKind

	// ListKindVal is the bullet style for ListBegin.
	ListKindVal ListKind

	// ListSpacing is the tight/loose state decided for ListEnd.
	ListSpacing Spacing

	// Checked is the task-list checkbox state for a ListItemBegin in a
	// TaskList.
	Checked bool

	// TableAlign carries per-column alignment ("", "left", "center",
	// "right") for TableBegin, indexed by column.
	TableAlign []string
}
