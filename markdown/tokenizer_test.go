package markdown

import (
	"testing"

	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, text string) []Token {
	t.Helper()
	src := source.New("doc.md", []rune(text))
	_, tokens := Tokenize("doc.md", src, nil, CtxMarkdown)
	return tokens
}

func TestHeadingWithBlockID(t *testing.T) {
	tokens := tokenize(t, "# Title {#custom-id}\n")
	require.NotEmpty(t, tokens)
	assert.Equal(t, HeadingBegin, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].HeadingLevel)
	assert.Equal(t, "custom-id", tokens[0].ID)
}

func TestParagraphAndEmphasis(t *testing.T) {
	tokens := tokenize(t, "Some *text* here.\n")
	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, ParagraphBegin)
	assert.Contains(t, kinds, FormattingBegin)
	assert.Contains(t, kinds, FormattingEnd)
	assert.Contains(t, kinds, ParagraphEnd)
}

func TestSetextHeading(t *testing.T) {
	tokens := tokenize(t, "Title\n=====\n")
	require.NotEmpty(t, tokens)
	assert.Equal(t, HeadingBegin, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].HeadingLevel)
}

func TestTaskList(t *testing.T) {
	tokens := tokenize(t, "- [x] done\n- [ ] pending\n")
	var items []Token
	for _, tok := range tokens {
		if tok.Kind == ListItemBegin {
			items = append(items, tok)
		}
	}
	require.Len(t, items, 2)
	assert.Equal(t, TaskList, items[0].ListKindVal)
	assert.True(t, items[0].Checked)
	assert.False(t, items[1].Checked)
}

func TestFootnoteRoundTrip(t *testing.T) {
	tokens := tokenize(t, "See[^1].\n\n[^1]: a note\n")
	var ref bool
	for _, tok := range tokens {
		if tok.Kind == FootnoteRef {
			ref = true
			assert.Equal(t, "1", tok.Data)
		}
	}
	assert.True(t, ref)
}

func TestUndefinedFootnoteLogsToSink(t *testing.T) {
	src := source.New("doc.md", []rune("See[^missing].\n"))
	sink := reporter.New()
	var records []reporter.Record
	sink.AttachOutputCallback(func(r reporter.Record) { records = append(records, r) })

	_, _ = Tokenize("doc.md", src, sink, CtxMarkdown)
	require.Len(t, records, 1)
	assert.Equal(t, "undefined-footnote-reference", records[0].Code)
}

func TestTableParsing(t *testing.T) {
	text := "a|b\n-|-\n1|2\n"
	tokens := tokenize(t, text)
	var sawTable bool
	for _, tok := range tokens {
		if tok.Kind == TableBegin {
			sawTable = true
		}
	}
	assert.True(t, sawTable)
}

func TestRejectedTableFallsBackToParagraph(t *testing.T) {
	text := "a|b\nnot a delimiter row\n"
	tokens := tokenize(t, text)
	for _, tok := range tokens {
		assert.NotEqual(t, TableBegin, tok.Kind)
	}
}
