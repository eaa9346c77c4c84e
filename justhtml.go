// Package parsekit provides a pure Go HTML5 and Markdown parsing pipeline
// implementing the WHATWG HTML5 and CommonMark-derived specifications.
//
// parsekit parses malformed HTML exactly as browsers do, and bridges
// Markdown through the same HTML5 tokenizer and tree builder so both
// document languages produce the same DOM.
//
// # Basic Usage
//
//	doc, err := parsekit.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mdDoc := parsekit.ParseMarkdown("# Title\n\nSome *text*.\n")
//
// # Features
//
//   - WHATWG HTML5 Living Standard tokenization and tree construction
//   - Markdown tokenization bridged into the same DOM via markdown.Convert
//   - Streaming API for memory-efficient processing
//   - Encoding detection per HTML5 spec
//   - Fragment parsing for innerHTML-style use cases
//
// For more information, see https://github.com/arborview/parsekit
package parsekit

import (
	"fmt"
	"log/slog"

	"github.com/arborview/parsekit/dom"
	"github.com/arborview/parsekit/encoding"
	htmlerrors "github.com/arborview/parsekit/errors"
	"github.com/arborview/parsekit/internal/obslog"
	"github.com/arborview/parsekit/markdown"
	"github.com/arborview/parsekit/source"
	"github.com/arborview/parsekit/tokenizer"
	"github.com/arborview/parsekit/treebuilder"
)

// Version is the current version of parsekit.
const Version = "0.1.0-dev"

// Parse parses an HTML string and returns a Document.
//
// The parser handles malformed HTML according to the WHATWG HTML5 specification,
// ensuring the same behavior as web browsers.
//
// Example:
//
//	doc, err := parsekit.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		// err contains parse errors if WithCollectErrors() was used
//	}
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	return recoverParse("tree-construction", cfg, func() (*dom.Document, error) {
		return parse(html, cfg)
	})
}

// ParseBytes parses HTML from a byte slice with automatic encoding detection.
//
// The encoding is detected according to the HTML5 specification:
//  1. BOM (Byte Order Mark)
//  2. HTTP Content-Type header (if provided via WithEncoding)
//  3. <meta charset> or <meta http-equiv="Content-Type">
//  4. Fallback to windows-1252
//
// Example:
//
//	data, _ := os.ReadFile("page.html")
//	doc, err := parsekit.ParseBytes(data)
func ParseBytes(html []byte, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)

	// Detect and decode encoding
	decoded, enc, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		return nil, err
	}
	obslog.Or(cfg.logger).Debug("parsekit: detected encoding", slog.String("encoding", enc.Name))

	return recoverParse("tree-construction", cfg, func() (*dom.Document, error) {
		return parse(decoded, cfg)
	})
}

// ParseFragment parses an HTML fragment in a specific context element.
//
// This is equivalent to setting element.innerHTML in browsers. The context
// determines how the fragment is parsed (e.g., parsing "<td>" in a "tr" context
// vs. in a "div" context produces different results).
//
// Example:
//
//	nodes, err := parsekit.ParseFragment("<td>Cell</td>", "tr")
func ParseFragment(html string, context string, opts ...Option) ([]*dom.Element, error) {
	cfg := newConfig(opts...)
	cfg.fragmentContext = &treebuilder.FragmentContext{
		TagName:   context,
		Namespace: "html",
	}
	return recoverParse("fragment-construction", cfg, func() ([]*dom.Element, error) {
		return parseFragment(html, cfg)
	})
}

// ParseMarkdown parses a Markdown document and returns the Document produced
// by bridging it through the HTML5 tokenizer and tree builder, per the
// pipeline's Markdown → HTML5 → DOM data flow.
func ParseMarkdown(text string, opts ...Option) *dom.Document {
	cfg := newConfig(opts...)
	src := source.New("", []rune(text))

	var doc *dom.Document
	func() {
		defer func() {
			if r := recover(); r != nil {
				obslog.Or(cfg.logger).Error("parsekit: recovered markdown parsing failure",
					slog.Any("cause", r))
			}
		}()
		doc = markdown.Convert("", src, cfg.sink)
	}()
	return doc
}

// recoverParse runs fn and converts a panic escaping it into an
// *errors.ParsingFailure instead of crashing the caller, logging the
// recovery through cfg.logger. Unreachable-state panics (a fragment
// context the tree builder's invariants don't expect, an adoption-agency
// bookkeeping bug) surface this way rather than propagating as runtime
// panics across the package boundary.
func recoverParse[T any](stage string, cfg *config, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			obslog.Or(cfg.logger).Error("parsekit: recovered parsing failure",
				slog.String("stage", stage), slog.Any("cause", cause))
			err = &htmlerrors.ParsingFailure{Stage: stage, Cause: cause}
		}
	}()
	return fn()
}

// parse is the internal parsing implementation.
func parse(html string, cfg *config) (*dom.Document, error) {
	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	if cfg.sink != nil {
		tok.SetSink(cfg.sink)
	}
	tb := treebuilder.New(tok)
	if cfg.sink != nil {
		tb.SetSink(cfg.sink, "")
	}
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := convertTokenizerErrors(tok.Errors())
		if len(parseErrs) > 0 && cfg.strict {
			return nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.Document(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.Document(), nil
}

// parseFragment is the internal fragment parsing implementation.
func parseFragment(html string, cfg *config) ([]*dom.Element, error) {
	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	if cfg.sink != nil {
		tok.SetSink(cfg.sink)
	}
	tb := treebuilder.NewFragment(tok, cfg.fragmentContext)
	if cfg.sink != nil {
		tb.SetSink(cfg.sink, "")
	}
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := convertTokenizerErrors(tok.Errors())
		if len(parseErrs) > 0 && cfg.strict {
			return nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.FragmentNodes(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.FragmentNodes(), nil
}

func convertTokenizerErrors(errs []tokenizer.ParseError) []*htmlerrors.ParseError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]*htmlerrors.ParseError, 0, len(errs))
	for _, e := range errs {
		out = append(out, &htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Line,
			Column:  e.Column,
		})
	}
	return out
}
