package config

import (
	"testing"

	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectsKeyValuePairs(t *testing.T) {
	text := "strict = true\n# comment\nmarkdown=yes\n"
	src := source.New("config.txt", []rune(text))

	result, err := Parse("config.txt", src, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"strict": "true", "markdown": "yes"}, result)
}

func TestParseLogsMissingEquals(t *testing.T) {
	text := "strict true\nmarkdown=yes\n"
	src := source.New("config.txt", []rune(text))

	var records []reporter.Record
	sink := reporter.New()
	sink.AttachOutputCallback(func(r reporter.Record) { records = append(records, r) })

	result, err := Parse("config.txt", src, sink)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"markdown": "yes"}, result)
	require.Len(t, records, 1)
	assert.Equal(t, "config-missing-equals", records[0].Code)
}

func TestTokenizeEmitsKeyValueCommentAndEOF(t *testing.T) {
	tokens := Tokenize("# header\nname = value\n")
	require.Len(t, tokens, 4)
	assert.Equal(t, Comment, tokens[0].Kind)
	assert.Equal(t, Key, tokens[1].Kind)
	assert.Equal(t, "name", tokens[1].Data)
	assert.Equal(t, Value, tokens[2].Kind)
	assert.Equal(t, "value", tokens[2].Data)
	assert.Equal(t, EOF, tokens[3].Kind)
}
