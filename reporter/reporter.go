// Package reporter implements the pipeline's error sink: a single place every
// stage (HTML5 tokenizer, tree builder, Markdown tokenizer, bridge) logs
// structured diagnostics to.
//
// A Sink is safe for concurrent use: its buffered pools and callback
// attach/detach are guarded by a mutex, and callbacks are invoked after
// the lock is released, so log calls from different goroutines may run
// callbacks concurrently. One Sink can serve as the single process-wide
// log for parses running on different goroutines.
package reporter

import (
	"fmt"
	"sync"

	"github.com/arborview/parsekit/source"
)

// Context discriminates which pipeline stage raised a Record, so each stage
// can own its own error code space without colliding with another's.
type Context int

const (
	// ContextHTML5Tokenizer tags records raised while tokenizing HTML5.
	ContextHTML5Tokenizer Context = iota
	// ContextTreeBuilder tags records raised while constructing the DOM tree.
	ContextTreeBuilder
	// ContextMarkdownTokenizer tags records raised while tokenizing Markdown.
	ContextMarkdownTokenizer
	// ContextMarkdownBridge tags records raised while translating Markdown
	// tokens into an HTML code-point stream.
	ContextMarkdownBridge
	// ContextDOM tags records raised by DOM mutation APIs outside of tree
	// construction (e.g. name validation failures surfaced as diagnostics
	// rather than returned errors).
	ContextDOM
	// ContextConfig tags records raised while parsing the "key = value"
	// configuration dialect.
	ContextConfig
)

// String names a Context for log output.
func (c Context) String() string {
	switch c {
	case ContextHTML5Tokenizer:
		return "html5-tokenizer"
	case ContextTreeBuilder:
		return "tree-builder"
	case ContextMarkdownTokenizer:
		return "markdown-tokenizer"
	case ContextMarkdownBridge:
		return "markdown-bridge"
	case ContextDOM:
		return "dom"
	case ContextConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Record is a single structured diagnostic.
type Record struct {
	Path    string
	Context Context
	Code    string
	Pos     source.Position
	Detail  string
}

// String renders a Record the way the reference logger prints to stdout.
func (r Record) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", r.Path, r.Pos.Line, r.Pos.Col, r.Context, r.Code)
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s: %s", r.Path, r.Pos.Line, r.Pos.Col, r.Context, r.Code, r.Detail)
}

// OutputCallback receives every dispatched Record.
type OutputCallback func(Record)

// Sink collects and dispatches parse diagnostics.
//
// When buffering is enabled for a path, records raised against that path
// accumulate in a per-path pool instead of dispatching immediately; Flush
// releases the pool as a block. This lets a speculative Markdown section
// discard its buffered records wholesale on rollback by never flushing them.
type Sink struct {
	mu sync.Mutex

	buffering bool
	pools     map[string][]Record

	primary OutputCallback
	named   map[string]OutputCallback
}

// New creates an empty Sink with buffering disabled.
func New() *Sink {
	return &Sink{
		pools: make(map[string][]Record),
		named: make(map[string]OutputCallback),
	}
}

var (
	defaultSink     *Sink
	defaultSinkOnce sync.Once
)

// Default returns the process-wide Sink used when an entry point is not
// handed an explicit one. Callbacks attached to it observe records from
// every parse that did not supply its own sink.
func Default() *Sink {
	defaultSinkOnce.Do(func() {
		defaultSink = New()
	})
	return defaultSink
}

// SetBuffering toggles per-path buffering for records logged from now on.
func (s *Sink) SetBuffering(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffering = flag
}

// AttachOutputCallback installs the single primary callback, replacing any
// previously attached primary callback.
func (s *Sink) AttachOutputCallback(cb OutputCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary = cb
}

// DetachOutputCallback removes the primary callback.
func (s *Sink) DetachOutputCallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary = nil
}

// AppendOutputCallback attaches a named, fan-out callback alongside the
// primary one. Returns false if a callback is already registered under name.
func (s *Sink) AppendOutputCallback(name string, cb OutputCallback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.named[name]; exists {
		return false
	}
	s.named[name] = cb
	return true
}

// DetachNamedOutputCallback removes a named callback. Returns false if none
// was registered under name.
func (s *Sink) DetachNamedOutputCallback(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.named[name]; !exists {
		return false
	}
	delete(s.named, name)
	return true
}

// Log records a diagnostic. If buffering is enabled, the record is appended
// to path's pool instead of dispatching. Pass bypassBuffer=true to force
// immediate dispatch regardless of buffering — used by callers that must
// surface an error even from within a speculative section that may later
// roll back.
func (s *Sink) Log(path string, ctx Context, code string, pos source.Position, detail string, bypassBuffer bool) {
	rec := Record{Path: path, Context: ctx, Code: code, Pos: pos, Detail: detail}

	s.mu.Lock()
	if s.buffering && !bypassBuffer {
		s.pools[path] = append(s.pools[path], rec)
		s.mu.Unlock()
		return
	}
	primary, named := s.snapshotCallbacksLocked()
	s.mu.Unlock()

	dispatch(rec, primary, named)
}

// Flush releases and dispatches every record buffered for path.
func (s *Sink) Flush(path string) {
	s.mu.Lock()
	recs := s.pools[path]
	delete(s.pools, path)
	primary, named := s.snapshotCallbacksLocked()
	s.mu.Unlock()

	for _, rec := range recs {
		dispatch(rec, primary, named)
	}
}

// FlushAll releases and dispatches every buffered record across all paths.
func (s *Sink) FlushAll() {
	s.mu.Lock()
	pools := s.pools
	s.pools = make(map[string][]Record)
	primary, named := s.snapshotCallbacksLocked()
	s.mu.Unlock()

	for _, recs := range pools {
		for _, rec := range recs {
			dispatch(rec, primary, named)
		}
	}
}

// Discard drops path's buffered pool without dispatching it, so none of its
// records reach a callback.
func (s *Sink) Discard(path string) {
	s.mu.Lock()
	delete(s.pools, path)
	s.mu.Unlock()
}

// Pending returns a copy of the records currently buffered for path, without
// releasing them. Useful for snapshotting the error-queue length that a
// section marker needs to truncate back to on rollback.
func (s *Sink) Pending(path string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.pools[path]))
	copy(out, s.pools[path])
	return out
}

// Truncate drops any buffered records for path beyond the first n, restoring
// the pool to the length it had at an earlier section marker.
func (s *Sink) Truncate(path string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pools[path]) > n {
		s.pools[path] = s.pools[path][:n]
	}
}

func (s *Sink) snapshotCallbacksLocked() (OutputCallback, map[string]OutputCallback) {
	named := make(map[string]OutputCallback, len(s.named))
	for k, v := range s.named {
		named[k] = v
	}
	return s.primary, named
}

func dispatch(rec Record, primary OutputCallback, named map[string]OutputCallback) {
	if primary != nil {
		primary(rec)
	}
	for _, cb := range named {
		cb(rec)
	}
}
