package source

import "testing"

func TestSource_NextAndPeek(t *testing.T) {
	s := New("t", []rune("ab"))
	if c, ok := s.Peek(0); !ok || c != 'a' {
		t.Fatalf("Peek(0) = %q, %v", c, ok)
	}
	if c, ok := s.Peek(1); !ok || c != 'b' {
		t.Fatalf("Peek(1) = %q, %v", c, ok)
	}
	if _, ok := s.Peek(2); ok {
		t.Fatalf("Peek(2) should be out of range")
	}

	c, ok := s.Next()
	if !ok || c != 'a' {
		t.Fatalf("Next() = %q, %v", c, ok)
	}
	if pos := s.Position(); pos != (Position{Line: 1, Col: 1}) {
		t.Fatalf("Position = %+v", pos)
	}
}

func TestSource_LineColumnTracking(t *testing.T) {
	s := New("t", []rune("ab\ncd"))
	for i := 0; i < 3; i++ {
		s.Next()
	}
	if pos := s.Position(); pos != (Position{Line: 2, Col: 0}) {
		t.Fatalf("after newline, Position = %+v", pos)
	}
	s.Next()
	if pos := s.Position(); pos != (Position{Line: 2, Col: 1}) {
		t.Fatalf("Position = %+v", pos)
	}
}

func TestSource_ReverseRestoresPosition(t *testing.T) {
	s := New("t", []rune("ab\ncd"))
	s.Advance(3) // consume "ab\n"
	want := s.Position()
	s.Next() // consume 'c'
	s.Reverse(1)
	if got := s.Position(); got != want {
		t.Fatalf("Reverse(1) position = %+v, want %+v", got, want)
	}
	if c, _ := s.Peek(0); c != 'c' {
		t.Fatalf("after reverse, Peek(0) = %q, want 'c'", c)
	}
}

func TestSource_MarkRestore(t *testing.T) {
	s := New("t", []rune("hello world"))
	s.Advance(5)
	m := s.Mark()
	s.Advance(6)
	if !s.ReachedEnd() {
		t.Fatalf("expected to reach end")
	}
	s.Restore(m)
	if s.ReachedEnd() {
		t.Fatalf("restore should un-exhaust the source")
	}
	c, _ := s.Peek(0)
	if c != ' ' {
		t.Fatalf("Peek(0) after restore = %q, want ' '", c)
	}
}

func TestSource_ReachedEnd(t *testing.T) {
	s := New("t", []rune("x"))
	if s.ReachedEnd() {
		t.Fatalf("fresh source should not have reached end")
	}
	s.Next()
	if !s.ReachedEnd() {
		t.Fatalf("expected to have reached end")
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("Next() past end should return ok=false")
	}
}
