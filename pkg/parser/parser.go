package parser

import (
	"fmt"

	"minic/pkg/errors"
	"minic/pkg/lexer"
)

// --- Debug Flag ---
const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[Parser Debug] "+format+"\n", args...)
	}
}

// --- End Debug Flag ---

// Parser consumes a token stream and builds an AST by recursive descent.
//
// Rule methods come in two shapes, one per failure channel:
//
//   - try* methods are speculative probes. They return ok=false when the rule
//     simply does not apply at the cursor, after restoring the cursor to its
//     pre-attempt position. A probe never raises an error for a non-match.
//   - parse* methods are committed. Once entered (or once a probe has
//     consumed a token it cannot give back, such as the '=' of an
//     assignment), any failure is a SyntaxError that aborts the whole parse.
type Parser struct {
	tokens *lexer.TokenStream
	tree   *Tree
}

// Parse builds a Program-rooted AST from the token stream. The first
// committed failure aborts the parse; no partial tree is returned.
func Parse(tokens *lexer.TokenStream) (*Tree, errors.MinicError) {
	p := &Parser{
		tokens: tokens,
		tree:   NewTree(),
	}
	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	p.tree.root = root
	return p.tree, nil
}

// parseProgram -> (intDeclaration | expressionStatement | assignmentStatement)*
func (p *Parser) parseProgram() (NodeID, errors.MinicError) {
	root := p.tree.alloc(Program, p.tokens.Source().Name, p.position(p.tokens.Peek()))

	for p.tokens.Peek().Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return NoNode, err
		}
		p.tree.addChild(root, stmt)
	}
	return root, nil
}

// parseStatement dispatches one top-level statement. intDeclaration is keyed
// off its leading keyword; expressionStatement and assignmentStatement are
// disambiguated by speculative backtracking.
func (p *Parser) parseStatement() (NodeID, errors.MinicError) {
	if p.tokens.Peek().Type == lexer.IntKeyword {
		return p.parseIntDeclaration()
	}

	if stmt, ok, err := p.tryExpressionStatement(); err != nil {
		return NoNode, err
	} else if ok {
		return stmt, nil
	}

	if stmt, ok, err := p.tryAssignmentStatement(); err != nil {
		return NoNode, err
	} else if ok {
		return stmt, nil
	}

	tok := p.tokens.Peek()
	return NoNode, p.syntaxError(errors.UnknownStatement, tok,
		"unrecognized statement starting with %s", describe(tok))
}

// parseIntDeclaration -> 'int' Identifier ('=' additive)? ';'
// Committed as soon as the leading keyword is consumed.
func (p *Parser) parseIntDeclaration() (NodeID, errors.MinicError) {
	kw := p.tokens.Read() // 'int'

	name := p.tokens.Read()
	if name.Type != lexer.Identifier {
		return NoNode, p.syntaxError(errors.MissingVariableName, name,
			"expecting a variable name after 'int', got %s", describe(name))
	}

	decl := p.tree.alloc(IntDeclaration, name.Literal, p.position(kw))

	if p.tokens.Peek().Type == lexer.Assignment {
		assign := p.tokens.Read() // '='
		init, ok, err := p.parseAdditive()
		if err != nil {
			return NoNode, err
		}
		if !ok {
			return NoNode, p.syntaxError(errors.MissingInitializer, p.tokens.Peek(),
				"expecting an expression after '=' at %d:%d", assign.Line, assign.Column)
		}
		p.tree.addChild(decl, init)
	}

	if err := p.expectSemicolon(); err != nil {
		return NoNode, err
	}
	return decl, nil
}

// tryExpressionStatement probes `additive ';'`. A missing trailing semicolon
// is a non-match, not an error: the cursor is restored to exactly its
// pre-attempt position so assignmentStatement can be tried from the same
// starting point. Failures inside a committed subexpression (a dangling
// operator, an unclosed parenthesis) still propagate as errors.
func (p *Parser) tryExpressionStatement() (NodeID, bool, errors.MinicError) {
	mark := p.tokens.Position()
	first := p.tokens.Peek()

	expr, ok, err := p.parseAdditive()
	if err != nil {
		return NoNode, false, err
	}
	if !ok {
		p.tokens.SetPosition(mark)
		return NoNode, false, nil
	}

	if p.tokens.Peek().Type != lexer.SemiColon {
		debugPrint("expressionStatement probe failed at %d, rewinding to %d", p.tokens.Position(), mark)
		p.tokens.SetPosition(mark)
		return NoNode, false, nil
	}
	p.tokens.Read() // ';'

	stmt := p.tree.alloc(ExpressionStmt, "", p.position(first))
	p.tree.addChild(stmt, expr)
	return stmt, true, nil
}

// tryAssignmentStatement probes `Identifier '=' additive ';'`. The leading
// identifier is read speculatively; if no '=' follows, a single Unread puts
// it back so another rule can reconsider it. Consuming the '=' commits the
// rule.
func (p *Parser) tryAssignmentStatement() (NodeID, bool, errors.MinicError) {
	name := p.tokens.Peek()
	if name.Type != lexer.Identifier {
		return NoNode, false, nil
	}
	p.tokens.Read()

	if p.tokens.Peek().Type != lexer.Assignment {
		p.tokens.Unread() // give the identifier back
		return NoNode, false, nil
	}
	assign := p.tokens.Read() // '=' — committed from here on

	value, ok, err := p.parseAdditive()
	if err != nil {
		return NoNode, false, err
	}
	if !ok {
		return NoNode, false, p.syntaxError(errors.MissingInitializer, p.tokens.Peek(),
			"expecting an expression after '=' at %d:%d", assign.Line, assign.Column)
	}

	if err := p.expectSemicolon(); err != nil {
		return NoNode, false, err
	}

	stmt := p.tree.alloc(AssignmentStmt, name.Literal, p.position(name))
	p.tree.addChild(stmt, value)
	return stmt, true, nil
}

// parseAdditive -> multiplicative (('+'|'-') multiplicative)*
//
// Left-associativity is built iteratively: each loop turn folds the
// previously accumulated node in as the LEFT child of a fresh binary node,
// so 2+3+4 becomes (2+3)+4 rather than 2+(3+4).
func (p *Parser) parseAdditive() (NodeID, bool, errors.MinicError) {
	left, ok, err := p.parseMultiplicative()
	if err != nil || !ok {
		return NoNode, ok, err
	}

	for {
		op := p.tokens.Peek()
		if op.Type != lexer.Plus && op.Type != lexer.Minus {
			return left, true, nil
		}
		p.tokens.Read() // the operator commits the right-hand side

		right, ok, err := p.parseMultiplicative()
		if err != nil {
			return NoNode, false, err
		}
		if !ok {
			return NoNode, false, p.syntaxError(errors.MissingOperand, p.tokens.Peek(),
				"expecting an operand after '%s'", op.Literal)
		}
		left = p.tree.newBinary(Additive, op.Literal, left, right, p.position(op))
	}
}

// parseMultiplicative -> primary (('*'|'/') primary)*
func (p *Parser) parseMultiplicative() (NodeID, bool, errors.MinicError) {
	left, ok, err := p.parsePrimary()
	if err != nil || !ok {
		return NoNode, ok, err
	}

	for {
		op := p.tokens.Peek()
		if op.Type != lexer.Star && op.Type != lexer.Slash {
			return left, true, nil
		}
		p.tokens.Read()

		right, ok, err := p.parsePrimary()
		if err != nil {
			return NoNode, false, err
		}
		if !ok {
			return NoNode, false, p.syntaxError(errors.MissingOperand, p.tokens.Peek(),
				"expecting an operand after '%s'", op.Literal)
		}
		left = p.tree.newBinary(Multiplicative, op.Literal, left, right, p.position(op))
	}
}

// parsePrimary -> IntLiteral | Identifier | '(' additive ')'
// A token that starts no primary is a non-match; a consumed '(' commits the
// grouped form.
func (p *Parser) parsePrimary() (NodeID, bool, errors.MinicError) {
	tok := p.tokens.Peek()
	switch tok.Type {
	case lexer.IntLiteral:
		p.tokens.Read()
		return p.tree.alloc(IntLiteral, tok.Literal, p.position(tok)), true, nil

	case lexer.Identifier:
		p.tokens.Read()
		return p.tree.alloc(Identifier, tok.Literal, p.position(tok)), true, nil

	case lexer.LeftParen:
		p.tokens.Read()
		inner, ok, err := p.parseAdditive()
		if err != nil {
			return NoNode, false, err
		}
		if !ok {
			return NoNode, false, p.syntaxError(errors.MissingOperand, p.tokens.Peek(),
				"expecting an expression after '('")
		}
		if closing := p.tokens.Peek(); closing.Type != lexer.RightParen {
			return NoNode, false, p.syntaxError(errors.MissingRightParen, closing,
				"expecting ')', got %s", describe(closing))
		}
		p.tokens.Read() // ')'
		return inner, true, nil

	default:
		return NoNode, false, nil
	}
}

// expectSemicolon consumes the statement terminator or raises the
// missing-semicolon condition.
func (p *Parser) expectSemicolon() errors.MinicError {
	tok := p.tokens.Peek()
	if tok.Type != lexer.SemiColon {
		return p.syntaxError(errors.MissingSemicolon, tok,
			"expecting ';', got %s", describe(tok))
	}
	p.tokens.Read()
	return nil
}

func (p *Parser) syntaxError(code errors.Code, tok lexer.Token, format string, args ...interface{}) errors.MinicError {
	return &errors.SyntaxError{
		Position:  p.position(tok),
		Condition: code,
		Msg:       fmt.Sprintf(format, args...),
	}
}

func (p *Parser) position(tok lexer.Token) errors.Position {
	return errors.Position{
		Line:     tok.Line,
		Column:   tok.Column,
		StartPos: tok.StartPos,
		EndPos:   tok.EndPos,
		Source:   p.tokens.Source(),
	}
}

// describe renders a token for error messages.
func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
