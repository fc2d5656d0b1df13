package driver

import (
	"fmt"
	"os"

	"minic/pkg/errors"
	"minic/pkg/interp"
	"minic/pkg/lexer"
	"minic/pkg/parser"
	"minic/pkg/source"
)

// Session represents a persistent interpreter session. It maintains one
// variable environment between separate evaluations, so variables declared
// in one fragment can be used in subsequent ones (the REPL relies on this).
type Session struct {
	interp *interp.Interpreter
}

// NewSession creates a session with a fresh, empty environment.
func NewSession() *Session {
	return &Session{
		interp: interp.New(interp.NewEnvironment()),
	}
}

// Env exposes the session's environment, mainly for tests.
func (s *Session) Env() *interp.Environment {
	return s.interp.Env()
}

// RunOptions controls optional diagnostic output during a run.
type RunOptions struct {
	ShowTokens bool // dump the token stream before parsing
	ShowAST    bool // dump the AST before evaluation
}

// RunSource tokenizes, parses and evaluates one source fragment in the
// session. It returns the per-statement results plus any errors; a syntax
// error yields no results, a runtime error yields the results of the
// statements that ran before it.
func (s *Session) RunSource(src *source.SourceFile, options RunOptions) ([]interp.Result, []errors.MinicError) {
	tokens := lexer.Tokenize(src)
	if options.ShowTokens {
		dumpTokens(tokens)
	}

	tree, perr := parser.Parse(tokens)
	if perr != nil {
		return nil, []errors.MinicError{perr}
	}
	if options.ShowAST {
		tree.Dump(os.Stdout)
	}

	results, rerr := s.interp.Run(tree)
	if rerr != nil {
		return results, []errors.MinicError{rerr}
	}
	return results, nil
}

// RunCode evaluates a code string in the session.
func (s *Session) RunCode(code string, options RunOptions) ([]interp.Result, []errors.MinicError) {
	return s.RunSource(source.NewEvalSource(code), options)
}

// DisplayResult prints the per-statement results to stdout, or the errors to
// stderr with source context. It returns true when the run succeeded.
func (s *Session) DisplayResult(src string, results []interp.Result, errs []errors.MinicError) bool {
	for _, r := range results {
		fmt.Println(r.String())
	}
	if len(errs) > 0 {
		errors.DisplayErrors(src, errs)
		return false
	}
	return true
}

// RunFile loads and runs a script file in a fresh session. It returns true
// on success.
func RunFile(filename string, options RunOptions) bool {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file '%s': %s\n", filename, err.Error())
		return false
	}
	src := source.FromFile(filename, string(sourceBytes))

	session := NewSession()
	results, errs := session.RunSource(src, options)
	return session.DisplayResult(src.Content, results, errs)
}

// dumpTokens prints one line per token: the type, then the literal.
func dumpTokens(tokens *lexer.TokenStream) {
	for _, tok := range tokens.Tokens() {
		fmt.Printf("%-12s %s\n", tok.Type, tok.Literal)
	}
}
