package lexer

import (
	"minic/pkg/source"
)

// TokenStream wraps an ordered token sequence with a position-addressable
// cursor. Read/Peek/Unread serve ordinary lookahead; Position/SetPosition
// allow arbitrary rewind for multi-token parser backtracking.
//
// Invariant: the cursor is always within [0, Len()].
type TokenStream struct {
	tokens []Token
	pos    int
	src    *source.SourceFile
	eof    Token
}

// NewTokenStream creates a stream over tokens produced from src. The eofLine,
// eofCol and eofPos arguments locate the end of input for the synthesized EOF
// token returned once the stream is exhausted.
func NewTokenStream(tokens []Token, src *source.SourceFile, eofLine, eofCol, eofPos int) *TokenStream {
	return &TokenStream{
		tokens: tokens,
		src:    src,
		eof: Token{
			Type:     EOF,
			Literal:  "",
			Line:     eofLine,
			Column:   eofCol,
			StartPos: eofPos,
			EndPos:   eofPos,
		},
	}
}

// Read returns the token under the cursor and advances past it. Once the
// stream is exhausted it returns the EOF token without moving the cursor.
func (ts *TokenStream) Read() Token {
	if ts.pos >= len(ts.tokens) {
		return ts.eof
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok
}

// Peek returns the token under the cursor without advancing.
func (ts *TokenStream) Peek() Token {
	if ts.pos >= len(ts.tokens) {
		return ts.eof
	}
	return ts.tokens[ts.pos]
}

// Unread moves the cursor back exactly one token. At the start of the stream
// it is a no-op, preserving the cursor invariant.
func (ts *TokenStream) Unread() {
	if ts.pos > 0 {
		ts.pos--
	}
}

// Position returns the current cursor position for later restore.
func (ts *TokenStream) Position() int {
	return ts.pos
}

// SetPosition rewinds (or fast-forwards) the cursor to an arbitrary recorded
// position, clamped to [0, Len()].
func (ts *TokenStream) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(ts.tokens) {
		pos = len(ts.tokens)
	}
	ts.pos = pos
}

// Len returns the number of tokens in the stream.
func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}

// Tokens returns the underlying token sequence. The slice is shared, not
// copied; callers must treat it as read-only.
func (ts *TokenStream) Tokens() []Token {
	return ts.tokens
}

// Source returns the source file the tokens were produced from.
func (ts *TokenStream) Source() *source.SourceFile {
	return ts.src
}
