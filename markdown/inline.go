package markdown

import (
	"strings"
)

// parseInline scans the text of one leaf block (already block-id-stripped)
// for emphasis, strong, code spans, links, images, footnote references,
// hard breaks, and backslash/entity escapes, returning the inline token
// sequence. Emphasis/strong pairing uses the formatting-marker deque:
// openers are pushed as they're seen and matched against the nearest
// compatible opener when a closing run is found.
func (t *Tokenizer) parseInline(text string) []Token {
	runes := []rune(text)
	var out []Token
	var markers []formattingMarker
	var buf []rune

	flush := func() {
		if len(buf) > 0 {
			out = append(out, Token{Kind: Character, Data: string(buf)})
			buf = buf[:0]
		}
	}

	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < len(runes) && isASCIIPunct(runes[i+1]):
			buf = append(buf, runes[i+1])
			i += 2

		case c == ' ' && i+1 < len(runes) && runes[i+1] == ' ' && trailingHardBreak(runes, i):
			flush()
			out = append(out, Token{Kind: LineBreak})
			for i < len(runes) && runes[i] == ' ' {
				i++
			}
			if i < len(runes) && runes[i] == '\n' {
				i++
			}

		case c == '`':
			run := 1
			for i+run < len(runes) && runes[i+run] == '`' {
				run++
			}
			if end := findCodeSpanClose(runes, i+run, run); end >= 0 {
				flush()
				out = append(out, Token{Kind: FormattingBegin, Format: CodeSpan})
				out = append(out, Token{Kind: Character, Data: strings.TrimSpace(string(runes[i+run : end]))})
				out = append(out, Token{Kind: FormattingEnd, Format: CodeSpan})
				i = end + run
			} else {
				buf = append(buf, runes[i:i+run]...)
				i += run
			}

		case c == '*' || c == '_':
			run := 1
			for i+run < len(runes) && runes[i+run] == c {
				run++
			}
			format := Emphasis
			if run >= 2 {
				format = Strong
			}
			if closeIdx := findFormattingOpener(markers, format, c); closeIdx >= 0 {
				flush()
				out = append(out, Token{Kind: FormattingEnd, Format: format})
				markers = append(markers[:closeIdx], markers[closeIdx+1:]...)
			} else {
				flush()
				out = append(out, Token{Kind: FormattingBegin, Format: format})
				markers = append(markers, formattingMarker{tokenIndex: len(out) - 1, format: format, delim: c, run: run})
			}
			i += run

		case c == '!' && i+1 < len(runes) && runes[i+1] == '[':
			if tok, next, ok := t.tryParseLinkOrImage(runes, i+1, true); ok {
				flush()
				out = append(out, tok...)
				i = next
			} else {
				buf = append(buf, c)
				i++
			}

		case c == '[':
			if label, next, ok := matchFootnoteRef(runes, i); ok {
				flush()
				out = append(out, Token{Kind: FootnoteRef, Data: label})
				i = next
			} else if tok, next, ok := t.tryParseLinkOrImage(runes, i, false); ok {
				flush()
				out = append(out, tok...)
				i = next
			} else {
				buf = append(buf, c)
				i++
			}

		case c == '{' && i+1 < len(runes) && runes[i+1] == '{':
			// Escape-to-host marker: only recognised here, in ordinary
			// inline content. Code spans, code fences, HTML blocks, and
			// link destinations never reach this case, so `{{` inside
			// them stays literal.
			flush()
			t.nativeEscape = true
			i = len(runes)

		case c == '<' && looksLikeAutolink(runes, i):
			end := indexRune(runes[i:], '>')
			url := string(runes[i+1 : i+end])
			flush()
			out = append(out, Token{Kind: HyperlinkBegin, Target: url})
			out = append(out, Token{Kind: Character, Data: url})
			out = append(out, Token{Kind: HyperlinkEnd})
			i += end + 1

		default:
			buf = append(buf, c)
			i++
		}
	}
	flush()
	return out
}

func isASCIIPunct(r rune) bool {
	return strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[]^_`{|}~\\", r)
}

func trailingHardBreak(runes []rune, i int) bool {
	j := i
	for j < len(runes) && runes[j] == ' ' {
		j++
	}
	return j < len(runes) && runes[j] == '\n'
}

func findCodeSpanClose(runes []rune, from int, run int) int {
	i := from
	for i < len(runes) {
		if runes[i] == '`' {
			count := 0
			j := i
			for j < len(runes) && runes[j] == '`' {
				count++
				j++
			}
			if count == run {
				return i
			}
			i = j
			continue
		}
		i++
	}
	return -1
}

// findFormattingOpener searches the formatting-marker deque for the nearest
// compatible opener (same delimiter and emphasis/strong kind) a closing run
// would match, implementing earliest-matching-type pairing from the nearest
// open marker outward.
func findFormattingOpener(markers []formattingMarker, format FormatKind, delim rune) int {
	for i := len(markers) - 1; i >= 0; i-- {
		if markers[i].format == format && markers[i].delim == delim {
			return i
		}
	}
	return -1
}

func matchFootnoteRef(runes []rune, i int) (label string, next int, ok bool) {
	if i+1 >= len(runes) || runes[i+1] != '^' {
		return "", 0, false
	}
	end := indexRune(runes[i+2:], ']')
	if end < 0 {
		return "", 0, false
	}
	return string(runes[i+2 : i+2+end]), i + 2 + end + 1, true
}

func looksLikeAutolink(runes []rune, i int) bool {
	end := indexRune(runes[i:], '>')
	if end < 0 {
		return false
	}
	body := string(runes[i+1 : i+end])
	return strings.HasPrefix(body, "http://") || strings.HasPrefix(body, "https://") || strings.HasPrefix(body, "mailto:")
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

// tryParseLinkOrImage speculatively parses a `[text](dest "title")` or
// `![alt](dest "title")` construct starting at the opening `[`. On failure
// (no matching `]` and `(...)`) it reports ok=false so the caller re-emits
// the `[`/`![` as literal text; the speculative scan itself only reads
// ahead over runes and never mutates shared state, so there is nothing to
// roll back beyond the caller discarding its own attempt — the
// section-marker discipline exists for the Source-backed speculative
// sections (tables, HTML blocks); here the "section" is this function's
// local scan.
func (t *Tokenizer) tryParseLinkOrImage(runes []rune, open int, isImage bool) ([]Token, int, bool) {
	depth := 1
	i := open + 1
	textStart := i
	for i < len(runes) && depth > 0 {
		switch runes[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth == 0 {
			break
		}
		i++
	}
	if depth != 0 {
		return nil, 0, false
	}
	text := string(runes[textStart:i])
	i++
	if i >= len(runes) || runes[i] != '(' {
		return nil, 0, false
	}
	i++
	destStart := i
	for i < len(runes) && runes[i] != ')' && runes[i] != ' ' {
		i++
	}
	dest := string(runes[destStart:i])
	title := ""
	for i < len(runes) && runes[i] == ' ' {
		i++
	}
	if i < len(runes) && (runes[i] == '"' || runes[i] == '\'') {
		q := runes[i]
		i++
		tStart := i
		for i < len(runes) && runes[i] != q {
			i++
		}
		title = string(runes[tStart:i])
		i++
	}
	for i < len(runes) && runes[i] != ')' {
		i++
	}
	if i >= len(runes) {
		return nil, 0, false
	}
	i++

	if isImage {
		return []Token{{Kind: Image, Data: text, Target: dest, Title: title}}, i, true
	}
	inner := t.parseInline(text)
	out := append([]Token{{Kind: HyperlinkBegin, Target: dest, Title: title}}, inner...)
	out = append(out, Token{Kind: HyperlinkEnd})
	return out, i, true
}
