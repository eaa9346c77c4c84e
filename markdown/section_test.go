package markdown

import (
	"testing"

	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenizeWithSink(t *testing.T, text string) ([]Token, []reporter.Record) {
	t.Helper()
	sink := reporter.New()
	var records []reporter.Record
	sink.AttachOutputCallback(func(rec reporter.Record) {
		records = append(records, rec)
	})
	src := source.New("doc.md", []rune(text))
	_, tokens := Tokenize("doc.md", src, sink, CtxMarkdown)
	return tokens, records
}

func TestRejectedTableRollsBackTokensAndErrors(t *testing.T) {
	tokens, records := tokenizeWithSink(t, "|not a table\n")

	kinds := kindsOf(tokens)
	assert.NotContains(t, kinds, TableBegin)
	assert.Contains(t, kinds, ParagraphBegin)

	var text string
	for _, tok := range tokens {
		if tok.Kind == Character {
			text += tok.Data
		}
	}
	assert.Contains(t, text, "|not a table")

	for _, rec := range records {
		assert.NotEqual(t, "table-missing-delimiter-row", rec.Code,
			"errors of a rolled-back section must never reach the sink")
	}
}

func TestCommittedTableSurvivesSection(t *testing.T) {
	tokens, records := tokenizeWithSink(t, "| h1 | h2 |\n|----|----|\n| a  | b  |\n")

	kinds := kindsOf(tokens)
	assert.Contains(t, kinds, TableBegin)
	assert.Contains(t, kinds, TableHeadingBegin)
	assert.Contains(t, kinds, TableCellBegin)
	assert.Empty(t, records)
}

func TestUnterminatedHTMLBlockFallsBackToParagraph(t *testing.T) {
	tokens, _ := tokenizeWithSink(t, "<script>\nvar x = 1\n")

	kinds := kindsOf(tokens)
	assert.NotContains(t, kinds, HtmlBlockBegin,
		"an unterminated sentinel block must abandon the HTML interpretation")
	assert.Contains(t, kinds, ParagraphBegin)
}

func TestTerminatedScriptBlockStaysHTML(t *testing.T) {
	tokens, _ := tokenizeWithSink(t, "<script>\nvar x = 1\n</script>\n")

	kinds := kindsOf(tokens)
	assert.Contains(t, kinds, HtmlBlockBegin)
}

func TestSectionRollbackTruncatesQueues(t *testing.T) {
	src := source.New("doc.md", []rune(""))
	tok := New("doc.md", src)

	tok.tokens = append(tok.tokens, Token{Kind: ParagraphBegin})
	mark := tok.beginSection(3)
	tok.tokens = append(tok.tokens, Token{Kind: TableBegin})
	tok.logError("speculative", "detail", false)

	line := tok.rollbackSection(mark)
	assert.Equal(t, 3, line)
	require.Len(t, tok.tokens, 1)
	assert.Equal(t, ParagraphBegin, tok.tokens[0].Kind)
	assert.Empty(t, tok.errQueue)
	assert.Zero(t, tok.sectionDepth)
}
