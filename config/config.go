// Package config implements the "key = value" configuration dialect the
// parsing pipeline's embedder uses to toggle per-document options: a small
// line tokenizer/parser, not the HTML5 or Markdown grammars, kept separate
// so its error codes live in their own reporter.Context.
package config

import (
	"strings"

	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
)

// TokenKind tags a configuration token.
type TokenKind int

const (
	Key TokenKind = iota
	Value
	Comment
	EOF
)

// Token is one unit of the configuration tokenizer's output.
type Token struct {
	Kind TokenKind
	Line int
	Data string
}

// Parse reads src line by line and returns the key/value pairs it defines.
// A line missing `=` is logged to sink under the "config" context and
// skipped rather than treated as fatal; a blank line or a line whose first
// non-whitespace character is `#` is a comment and produces no pair.
func Parse(path string, src *source.Source, sink *reporter.Sink) (map[string]string, error) {
	text := string(src.Slice(src.Pos(), src.Len()))
	src.Advance(src.Len() - src.Pos())

	result := make(map[string]string)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			if sink != nil {
				sink.Log(path, reporter.ContextConfig, "config-missing-equals", source.Position{Line: i + 1}, raw, false)
			}
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			if sink != nil {
				sink.Log(path, reporter.ContextConfig, "config-empty-key", source.Position{Line: i + 1}, raw, false)
			}
			continue
		}
		result[key] = value
	}
	return result, nil
}

// Tokenize returns the flat token stream a Parse call reduces, exposed
// separately for callers (diagnostics, a future config linter) that want the
// line-level structure rather than just the collapsed key/value map.
func Tokenize(text string) []Token {
	var tokens []Token
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			tokens = append(tokens, Token{Kind: Comment, Line: i + 1, Data: strings.TrimPrefix(line, "#")})
		default:
			idx := strings.IndexByte(line, '=')
			if idx < 0 {
				continue
			}
			tokens = append(tokens, Token{Kind: Key, Line: i + 1, Data: strings.TrimSpace(line[:idx])})
			tokens = append(tokens, Token{Kind: Value, Line: i + 1, Data: strings.TrimSpace(line[idx+1:])})
		}
	}
	tokens = append(tokens, Token{Kind: EOF})
	return tokens
}
