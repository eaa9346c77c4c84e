package markdown

// sectionMarker snapshots the tokenizer's queues at the start of a
// speculative region (a tentative table header, a sentinel-delimited HTML
// block). Rolling back truncates the token queue and error queue to the
// recorded lengths and resumes scanning at the recorded line index, so a
// rejected speculation leaves no trace downstream. Formatting markers are
// leaf-local in this tokenizer and never outlive a section, so no
// formatting-deque index needs to be captured.
type sectionMarker struct {
	tokenQueueLen int
	errorMark     int
	line          int
}

func (t *Tokenizer) beginSection(line int) sectionMarker {
	t.sectionDepth++
	return sectionMarker{
		tokenQueueLen: len(t.tokens),
		errorMark:     len(t.errQueue),
		line:          line,
	}
}

// commitSection keeps everything emitted since the matching beginSection.
func (t *Tokenizer) commitSection() {
	t.sectionDepth--
}

// rollbackSection discards every token and queued error emitted since the
// matching beginSection and returns the line index scanning resumes at.
func (t *Tokenizer) rollbackSection(m sectionMarker) int {
	t.tokens = t.tokens[:m.tokenQueueLen]
	t.errQueue = t.errQueue[:m.errorMark]
	t.sectionDepth--
	return m.line
}
