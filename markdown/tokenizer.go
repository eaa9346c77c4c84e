package markdown

import (
	"strings"

	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
)

// bufferedError is one queued diagnostic awaiting flush. Records raised
// inside a speculative section sit in the queue so a rollback can discard
// them together with the section's tokens.
type bufferedError struct {
	code   string
	detail string
}

// Tokenizer turns a Markdown document into a flat token stream. It owns the
// token queue, the currently-open list (for nested list-item recursion), a
// per-document footnote table collected in the same pass, and the
// is_fake_table suppression flag guarding against retrying a rejected table
// header on the immediately following line.
type Tokenizer struct {
	path string
	src  *source.Source
	sink *reporter.Sink

	tokens []Token

	pending     pendingBuffer
	currentList *listState
	isFakeTable bool

	errQueue     []bufferedError
	sectionDepth int
	nativeEscape bool

	footnoteDefs  map[string][]Token
	footnoteOrder []string
}

// New creates a Markdown tokenizer reading from src.
func New(path string, src *source.Source) *Tokenizer {
	return &Tokenizer{
		path:         path,
		src:          src,
		footnoteDefs: make(map[string][]Token),
	}
}

// SetSink attaches the error sink that parse diagnostics are logged to.
func (t *Tokenizer) SetSink(sink *reporter.Sink) {
	t.sink = sink
}

// Footnotes returns the footnote definitions collected during Run, in first
// definition order, for a Bridge to render.
func (t *Tokenizer) Footnotes() ([]string, map[string][]Token) {
	return t.footnoteOrder, t.footnoteDefs
}

// Tokenize runs the tokenizer to completion and returns the ending context
// (CtxMarkdown, or CtxNative if the document ended with a `{{...}}`
// escape-to-host marker) plus the token stream, terminated by an EOF token.
func Tokenize(path string, src *source.Source, sink *reporter.Sink, startCtx Context) (Context, []Token) {
	t := New(path, src)
	t.SetSink(sink)
	return t.Run(startCtx)
}

// Run executes the tokenizer over its Source and returns the ending context
// and token stream. The context comes back as CtxNative when a `{{`
// escape-to-host marker was reached during ordinary inline scanning; the
// marker is not recognised inside code spans, code fences, HTML blocks, or
// link destinations, where `{{` stays literal.
func (t *Tokenizer) Run(startCtx Context) (Context, []Token) {
	text := string(t.src.Slice(t.src.Pos(), t.src.Len()))
	t.src.Advance(t.src.Len() - t.src.Pos())

	lines := splitLines(text)
	t.runBlocks(lines)
	t.checkFootnoteRefs()
	t.flushErrors()
	t.tokens = append(t.tokens, Token{Kind: EOF})

	endCtx := startCtx
	if t.nativeEscape {
		endCtx = CtxNative
	}
	return endCtx, t.tokens
}

// logError queues a diagnostic for the current document. Inside a
// speculative section the record stays buffered so a rollback discards it;
// bypass forces immediate dispatch regardless of any open section.
func (t *Tokenizer) logError(code, detail string, bypass bool) {
	if bypass {
		if t.sink != nil {
			t.sink.Log(t.path, reporter.ContextMarkdownTokenizer, code, source.Position{}, detail, true)
		}
		return
	}
	t.errQueue = append(t.errQueue, bufferedError{code: code, detail: detail})
}

// flushErrors dispatches every queued diagnostic that survived to the end of
// the parse. Records of rolled-back sections were already truncated away.
func (t *Tokenizer) flushErrors() {
	if t.sink != nil {
		for _, e := range t.errQueue {
			t.sink.Log(t.path, reporter.ContextMarkdownTokenizer, e.code, source.Position{}, e.detail, false)
		}
	}
	t.errQueue = t.errQueue[:0]
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func (t *Tokenizer) collectFootnote(label, firstLine string) {
	if _, exists := t.footnoteDefs[label]; exists {
		return
	}
	t.footnoteOrder = append(t.footnoteOrder, label)
	t.footnoteDefs[label] = t.parseInline(firstLine)
}

func (t *Tokenizer) checkFootnoteRefs() {
	for _, tok := range t.tokens {
		if tok.Kind != FootnoteRef {
			continue
		}
		if _, ok := t.footnoteDefs[tok.Data]; !ok {
			t.logError("undefined-footnote-reference", tok.Data, false)
		}
	}
}
