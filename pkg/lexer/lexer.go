package lexer

import (
	"minic/pkg/source"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The actual text of the token (lexeme)
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	EOF TokenType = "EOF" // End Of File

	// Identifiers + Literals
	Identifier TokenType = "Identifier" // variable names
	IntLiteral TokenType = "IntLiteral" // 123
	IntKeyword TokenType = "IntKeyword" // the reserved word 'int'

	// Operators
	Plus       TokenType = "+"
	Minus      TokenType = "-"
	Star       TokenType = "*"
	Slash      TokenType = "/"
	Assignment TokenType = "="

	// Relational (lexed but unused by the statement grammar)
	GreaterThan  TokenType = ">"
	GreaterEqual TokenType = ">="

	// Delimiters
	SemiColon  TokenType = ";"
	LeftParen  TokenType = "("
	RightParen TokenType = ")"
)

// dfaState is the lexer's DFA state. Exactly one state is active per input
// character; accumulating states grow the current lexeme, one-shot states
// emit their token as soon as they are entered.
type dfaState uint8

const (
	stateInitial dfaState = iota
	stateIdent            // inside an identifier
	stateIntLit           // inside an integer literal
	stateInt1             // matched "i" of a possible 'int'
	stateInt2             // matched "in"
	stateInt3             // matched "int"
	stateGT               // matched ">", deciding between '>' and '>='
)

// Lexer holds the state of the DFA tokenizer.
type Lexer struct {
	src   *source.SourceFile
	input string

	pos    int // byte offset of the next character to dispatch
	line   int // 1-based line of the next character
	column int // 1-based column of the next character

	state     dfaState
	start     int // byte offset of the current lexeme's first character
	startLine int
	startCol  int

	tokens []Token
}

// NewLexer creates a new Lexer over the given source file.
func NewLexer(src *source.SourceFile) *Lexer {
	return &Lexer{
		src:    src,
		input:  src.Content,
		line:   1,
		column: 1,
		state:  stateInitial,
	}
}

// Tokenize runs the DFA over the whole input in one pass and returns the
// resulting token stream. The lexer never fails: whitespace and unrecognized
// characters are skipped, and malformed input surfaces later as a parse error.
func Tokenize(src *source.SourceFile) *TokenStream {
	l := NewLexer(src)
	for l.pos < len(l.input) {
		l.step(l.input[l.pos])
	}
	// End of input forces one final close-out of any mid-accumulation lexeme.
	l.closeOut()
	return NewTokenStream(l.tokens, src, l.line, l.column, l.pos)
}

// step dispatches one character to the active DFA state. A character that
// terminates a token closes it out and is then re-dispatched in the Initial
// state, so no character is ever dropped or consumed twice.
func (l *Lexer) step(ch byte) {
	switch l.state {
	case stateInitial:
		l.dispatch(ch)

	case stateIdent:
		if isLetter(ch) || isDigit(ch) {
			l.advance()
		} else {
			l.emit(Identifier)
		}

	case stateIntLit:
		if isDigit(ch) {
			l.advance()
		} else {
			l.emit(IntLiteral)
		}

	case stateInt1:
		switch {
		case ch == 'n':
			l.state = stateInt2
			l.advance()
		case isLetter(ch) || isDigit(ch):
			// Demote to the plain identifier path; the lexeme keeps growing.
			l.state = stateIdent
			l.advance()
		default:
			l.emit(Identifier)
		}

	case stateInt2:
		switch {
		case ch == 't':
			l.state = stateInt3
			l.advance()
		case isLetter(ch) || isDigit(ch):
			l.state = stateIdent
			l.advance()
		default:
			l.emit(Identifier)
		}

	case stateInt3:
		switch {
		case isWhitespace(ch):
			// Only a whitespace follow character commits the keyword.
			l.emit(IntKeyword)
		case isLetter(ch) || isDigit(ch):
			l.state = stateIdent
			l.advance()
		default:
			// Any other follow character (';', '(', ...) leaves the token on
			// the identifier path.
			l.emit(Identifier)
		}

	case stateGT:
		if ch == '=' {
			l.advance()
			l.emit(GreaterEqual)
		} else {
			l.emit(GreaterThan)
		}
	}
}

// dispatch classifies a character in the Initial state and begins (or fully
// emits) the token it starts.
func (l *Lexer) dispatch(ch byte) {
	switch {
	case isWhitespace(ch):
		l.advance()

	case ch == 'i':
		l.begin(stateInt1)
	case isLetter(ch):
		l.begin(stateIdent)
	case isDigit(ch):
		l.begin(stateIntLit)
	case ch == '>':
		l.begin(stateGT)

	case ch == '+':
		l.single(Plus)
	case ch == '-':
		l.single(Minus)
	case ch == '*':
		l.single(Star)
	case ch == '/':
		l.single(Slash)
	case ch == '=':
		l.single(Assignment)
	case ch == ';':
		l.single(SemiColon)
	case ch == '(':
		l.single(LeftParen)
	case ch == ')':
		l.single(RightParen)

	default:
		// Unrecognized characters are skipped, not an error.
		l.advance()
	}
}

// begin starts accumulating a lexeme at the current character.
func (l *Lexer) begin(s dfaState) {
	l.state = s
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.column
	l.advance()
}

// single emits a one-shot single-character token.
func (l *Lexer) single(t TokenType) {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.column
	l.advance()
	l.emit(t)
}

// emit finalizes the current lexeme as a token of the given type and returns
// the DFA to the Initial state. The terminating character (if any) has not
// been consumed and is re-dispatched by the main loop.
func (l *Lexer) emit(t TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:     t,
		Literal:  l.input[l.start:l.pos],
		Line:     l.startLine,
		Column:   l.startCol,
		StartPos: l.start,
		EndPos:   l.pos,
	})
	l.state = stateInitial
}

// closeOut finalizes a lexeme left mid-accumulation at end of input.
func (l *Lexer) closeOut() {
	switch l.state {
	case stateIdent, stateInt1, stateInt2:
		l.emit(Identifier)
	case stateInt3:
		// No whitespace was observed after the full "int" prefix, so the
		// keyword distinction is never committed at end of input.
		l.emit(Identifier)
	case stateIntLit:
		l.emit(IntLiteral)
	case stateGT:
		l.emit(GreaterThan)
	}
}

// advance consumes the current character and updates line/column counts.
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// isLetter checks if the character is an ASCII letter.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if the character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isWhitespace checks for the blank characters the DFA skips between tokens.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
