// Package stream exposes the pipeline's tokenizers as a channel of parse
// events, for callers that want tag/text/comment callbacks without building
// a DOM tree. HTML input feeds the HTML5 tokenizer directly; Markdown input
// runs through the Markdown tokenizer and bridge first, so both languages
// produce the same event surface.
package stream

import (
	"github.com/arborview/parsekit/encoding"
	"github.com/arborview/parsekit/markdown"
	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
	"github.com/arborview/parsekit/tokenizer"
)

// EventType represents the type of streaming event.
type EventType int

// Event types for the streaming API.
const (
	StartTagEvent EventType = iota
	EndTagEvent
	TextEvent
	CommentEvent
	DoctypeEvent
)

// String returns the name of the event type.
func (e EventType) String() string {
	names := [...]string{"StartTag", "EndTag", "Text", "Comment", "Doctype"}
	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}

// Event represents a parsing event in the stream.
type Event struct {
	// Type is the event type.
	Type EventType

	// Name is the tag name (for start/end tags) or DOCTYPE name.
	Name string

	// Attrs contains attributes (for start tags only).
	Attrs map[string]string

	// Data is the text content (for text/comment events).
	Data string

	// For DOCTYPE events
	PublicID string
	SystemID string
}

// Stream returns a channel of parsing events for an HTML document.
// The channel is closed when parsing is complete. Parse diagnostics go to
// the sink configured with WithSink, or the process-wide default.
func Stream(html string, opts ...Option) <-chan Event {
	cfg := newConfig(opts...)
	ch := make(chan Event)
	go func() {
		defer close(ch)
		streamTokens(html, cfg.sink, ch)
	}()
	return ch
}

// StreamBytes returns a channel of parsing events from byte input, decoding
// it first with the configured encoding hint (or BOM/heuristic detection
// when none is given).
func StreamBytes(html []byte, opts ...Option) <-chan Event {
	cfg := newConfig(opts...)
	decoded, _, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		cfg.sink.Log("", reporter.ContextHTML5Tokenizer, "input-decode-failure", source.Position{}, err.Error(), true)
		ch := make(chan Event)
		close(ch)
		return ch
	}
	ch := make(chan Event)
	go func() {
		defer close(ch)
		streamTokens(decoded, cfg.sink, ch)
	}()
	return ch
}

// StreamMarkdown returns a channel of parsing events for a Markdown
// document: the Markdown tokenizer and bridge render the input to HTML,
// which then feeds the same HTML5 event stream Stream produces.
func StreamMarkdown(text string, opts ...Option) <-chan Event {
	cfg := newConfig(opts...)
	ch := make(chan Event)
	go func() {
		defer close(ch)
		src := source.New("", []rune(text))
		md := markdown.New("", src)
		md.SetSink(cfg.sink)
		_, tokens := md.Run(markdown.CtxMarkdown)
		order, defs := md.Footnotes()
		bridge := markdown.NewBridge("", cfg.sink, order, defs)
		streamTokens(string(bridge.Render(tokens)), cfg.sink, ch)
	}()
	return ch
}

func ptrToString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func streamTokens(html string, sink *reporter.Sink, ch chan<- Event) {
	tok := tokenizer.New(html)
	if sink != nil {
		tok.SetSink(sink)
	}

	for {
		token := tok.Next()

		switch token.Type {
		case tokenizer.StartTag:
			ch <- Event{
				Type:  StartTagEvent,
				Name:  token.Name,
				Attrs: tokenizer.AttrsToMap(token.Attrs),
			}

		case tokenizer.EndTag:
			ch <- Event{
				Type: EndTagEvent,
				Name: token.Name,
			}

		case tokenizer.Character:
			ch <- Event{
				Type: TextEvent,
				Data: token.Data,
			}

		case tokenizer.Comment:
			ch <- Event{
				Type: CommentEvent,
				Data: token.Data,
			}

		case tokenizer.DOCTYPE:
			ch <- Event{
				Type:     DoctypeEvent,
				Name:     token.Name,
				PublicID: ptrToString(token.PublicID),
				SystemID: ptrToString(token.SystemID),
			}

		case tokenizer.EOF:
			return

		case tokenizer.Error:
			// Already logged through the sink; continue per the HTML5
			// recovery rules.
			continue
		}
	}
}
