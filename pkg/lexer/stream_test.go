package lexer

import (
	"testing"

	"minic/pkg/source"
)

func TestStreamReadPeekUnread(t *testing.T) {
	ts := Tokenize(source.NewEvalSource("a + b"))

	if tok := ts.Peek(); tok.Literal != "a" {
		t.Fatalf("Peek = %q, want %q", tok.Literal, "a")
	}
	if ts.Position() != 0 {
		t.Fatalf("Peek moved the cursor to %d", ts.Position())
	}

	if tok := ts.Read(); tok.Literal != "a" {
		t.Fatalf("Read = %q, want %q", tok.Literal, "a")
	}
	if tok := ts.Read(); tok.Type != Plus {
		t.Fatalf("Read = %q, want %q", tok.Type, Plus)
	}

	ts.Unread()
	if tok := ts.Read(); tok.Type != Plus {
		t.Fatalf("Read after Unread = %q, want %q", tok.Type, Plus)
	}

	if tok := ts.Read(); tok.Literal != "b" {
		t.Fatalf("Read = %q, want %q", tok.Literal, "b")
	}
	if tok := ts.Read(); tok.Type != EOF {
		t.Fatalf("Read past end = %q, want EOF", tok.Type)
	}
	// Reading past the end must not move the cursor beyond Len().
	if ts.Position() != ts.Len() {
		t.Fatalf("Position = %d after EOF, want %d", ts.Position(), ts.Len())
	}
}

func TestStreamPositionRoundTrip(t *testing.T) {
	ts := Tokenize(source.NewEvalSource("x = 1 + 2;"))

	mark := ts.Position()
	first := ts.Peek()

	// Speculatively consume a few tokens, then rewind.
	ts.Read()
	ts.Read()
	ts.Read()
	ts.SetPosition(mark)

	if ts.Position() != mark {
		t.Fatalf("Position = %d after restore, want %d", ts.Position(), mark)
	}
	if tok := ts.Peek(); tok != first {
		t.Fatalf("token after restore = %+v, want %+v", tok, first)
	}
}

func TestStreamCursorClamping(t *testing.T) {
	ts := Tokenize(source.NewEvalSource("a;"))

	ts.Unread() // at position 0: must stay in range
	if ts.Position() != 0 {
		t.Fatalf("Unread at start moved cursor to %d", ts.Position())
	}

	ts.SetPosition(-3)
	if ts.Position() != 0 {
		t.Fatalf("SetPosition(-3) left cursor at %d", ts.Position())
	}

	ts.SetPosition(99)
	if ts.Position() != ts.Len() {
		t.Fatalf("SetPosition(99) left cursor at %d, want %d", ts.Position(), ts.Len())
	}
	if tok := ts.Read(); tok.Type != EOF {
		t.Fatalf("Read at clamped end = %q, want EOF", tok.Type)
	}
}

func TestStreamEOFPosition(t *testing.T) {
	ts := Tokenize(source.NewEvalSource("ab"))
	ts.Read()
	eof := ts.Read()
	if eof.Type != EOF {
		t.Fatalf("expected EOF, got %q", eof.Type)
	}
	if eof.StartPos != 2 || eof.Line != 1 || eof.Column != 3 {
		t.Fatalf("EOF position wrong: %+v", eof)
	}
}
