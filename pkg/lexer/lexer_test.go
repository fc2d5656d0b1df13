package lexer

import (
	"testing"

	"minic/pkg/source"
)

func tokenizeString(input string) *TokenStream {
	return Tokenize(source.NewEvalSource(input))
}

func TestTokenize(t *testing.T) {
	input := `int age = 45;
age = age + 10 * 2;
(age - 5) / 3;
age >= 30;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{IntKeyword, "int", 1},
		{Identifier, "age", 1},
		{Assignment, "=", 1},
		{IntLiteral, "45", 1},
		{SemiColon, ";", 1},
		{Identifier, "age", 2},
		{Assignment, "=", 2},
		{Identifier, "age", 2},
		{Plus, "+", 2},
		{IntLiteral, "10", 2},
		{Star, "*", 2},
		{IntLiteral, "2", 2},
		{SemiColon, ";", 2},
		{LeftParen, "(", 3},
		{Identifier, "age", 3},
		{Minus, "-", 3},
		{IntLiteral, "5", 3},
		{RightParen, ")", 3},
		{Slash, "/", 3},
		{IntLiteral, "3", 3},
		{SemiColon, ";", 3},
		{Identifier, "age", 4},
		{GreaterEqual, ">=", 4},
		{IntLiteral, "30", 4},
		{SemiColon, ";", 4},
		{EOF, "", 4},
	}

	ts := tokenizeString(input)

	for i, tt := range tests {
		tok := ts.Read()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal: %q, line: %d)",
				i, tt.expectedType, tok.Type, tok.Literal, tok.Line)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q (type: %q, line: %d)",
				i, tt.expectedLiteral, tok.Literal, tok.Type, tok.Line)
		}

		if tok.Line != tt.expectedLine {
			t.Errorf("tests[%d] - line wrong. expected=%d, got=%d (type: %q, literal: %q)",
				i, tt.expectedLine, tok.Line, tok.Type, tok.Literal)
		}
	}
}

func TestIntKeywordRecognition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []TokenType
		lits  []string
	}{
		{
			name:  "keyword committed when followed by whitespace",
			input: "int age = 30",
			types: []TokenType{IntKeyword, Identifier, Assignment, IntLiteral},
			lits:  []string{"int", "age", "=", "30"},
		},
		{
			name:  "longer identifier never splits into keyword plus rest",
			input: "inta age = 30;",
			types: []TokenType{Identifier, Identifier, Assignment, IntLiteral, SemiColon},
			lits:  []string{"inta", "age", "=", "30", ";"},
		},
		{
			name:  "prefix demoted by a digit",
			input: "int3;",
			types: []TokenType{Identifier, SemiColon},
			lits:  []string{"int3", ";"},
		},
		{
			name:  "semicolon follow character does not commit the keyword",
			input: "int;",
			types: []TokenType{Identifier, SemiColon},
			lits:  []string{"int", ";"},
		},
		{
			name:  "end of input does not commit the keyword",
			input: "int",
			types: []TokenType{Identifier},
			lits:  []string{"int"},
		},
		{
			name:  "partial prefix is a plain identifier",
			input: "in x",
			types: []TokenType{Identifier, Identifier},
			lits:  []string{"in", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tokenizeString(tt.input)
			for i := range tt.types {
				tok := ts.Read()
				if tok.Type != tt.types[i] {
					t.Fatalf("token[%d] type wrong. expected=%q, got=%q (literal %q)",
						i, tt.types[i], tok.Type, tok.Literal)
				}
				if tok.Literal != tt.lits[i] {
					t.Fatalf("token[%d] literal wrong. expected=%q, got=%q",
						i, tt.lits[i], tok.Literal)
				}
			}
			if tok := ts.Read(); tok.Type != EOF {
				t.Fatalf("expected EOF after %d tokens, got %q (%q)", len(tt.types), tok.Type, tok.Literal)
			}
		})
	}
}

func TestGreaterEqualLexing(t *testing.T) {
	ts := tokenizeString("age >= 30;")

	want := []struct {
		typ TokenType
		lit string
	}{
		{Identifier, "age"},
		{GreaterEqual, ">="},
		{IntLiteral, "30"},
		{SemiColon, ";"},
	}
	for i, w := range want {
		tok := ts.Read()
		if tok.Type != w.typ || tok.Literal != w.lit {
			t.Fatalf("token[%d] = %q %q, want %q %q", i, tok.Type, tok.Literal, w.typ, w.lit)
		}
	}

	// '>' not followed by '=' closes out as GreaterThan and re-dispatches.
	ts = tokenizeString("a>b")
	want2 := []TokenType{Identifier, GreaterThan, Identifier}
	for i, w := range want2 {
		if tok := ts.Read(); tok.Type != w {
			t.Fatalf("token[%d] type = %q, want %q", i, tok.Type, w)
		}
	}
}

func TestCloseOutRedispatch(t *testing.T) {
	// The character that ends one token must start the next: no separating
	// whitespace anywhere.
	ts := tokenizeString("2+3*(x4-5);")

	want := []struct {
		typ TokenType
		lit string
	}{
		{IntLiteral, "2"},
		{Plus, "+"},
		{IntLiteral, "3"},
		{Star, "*"},
		{LeftParen, "("},
		{Identifier, "x4"},
		{Minus, "-"},
		{IntLiteral, "5"},
		{RightParen, ")"},
		{SemiColon, ";"},
	}
	for i, w := range want {
		tok := ts.Read()
		if tok.Type != w.typ || tok.Literal != w.lit {
			t.Fatalf("token[%d] = %q %q, want %q %q", i, tok.Type, tok.Literal, w.typ, w.lit)
		}
	}
}

func TestUnrecognizedCharactersSkipped(t *testing.T) {
	ts := tokenizeString("a @ # b")
	if n := ts.Len(); n != 2 {
		t.Fatalf("expected 2 tokens, got %d", n)
	}
	if tok := ts.Read(); tok.Literal != "a" {
		t.Errorf("first token = %q, want %q", tok.Literal, "a")
	}
	if tok := ts.Read(); tok.Literal != "b" {
		t.Errorf("second token = %q, want %q", tok.Literal, "b")
	}
}

func TestTokenPositions(t *testing.T) {
	ts := tokenizeString("int a;\na = 12;")

	tok := ts.Read() // int
	if tok.Type != IntKeyword || tok.Line != 1 || tok.Column != 1 || tok.StartPos != 0 || tok.EndPos != 3 {
		t.Fatalf("int token position wrong: %+v", tok)
	}
	ts.Read()       // a
	ts.Read()       // ;
	tok = ts.Read() // second a
	if tok.Line != 2 || tok.Column != 1 || tok.StartPos != 7 {
		t.Fatalf("second-line token position wrong: %+v", tok)
	}
	ts.Read()       // =
	tok = ts.Read() // 12
	if tok.Line != 2 || tok.Column != 5 || tok.StartPos != 11 || tok.EndPos != 13 {
		t.Fatalf("literal token position wrong: %+v", tok)
	}
}
