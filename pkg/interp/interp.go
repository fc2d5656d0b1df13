package interp

import (
	"fmt"
	"strconv"

	"minic/pkg/errors"
	"minic/pkg/parser"
)

// Result is the outcome of one top-level statement. Name is the bound
// variable for declarations and assignments and empty for bare expression
// statements; HasValue is false only for a declaration without an
// initializer.
type Result struct {
	Name     string
	Value    int64
	HasValue bool
}

// String renders the result the way the REPL surfaces it: "<name>: <value>"
// for declarations and assignments, the bare value for expressions.
func (r Result) String() string {
	if r.Name != "" {
		if !r.HasValue {
			return r.Name + ": undefined"
		}
		return fmt.Sprintf("%s: %d", r.Name, r.Value)
	}
	return strconv.FormatInt(r.Value, 10)
}

// Interpreter tree-walks a parsed program against a mutable variable
// environment. The environment outlives a single Run when the caller wants
// variables to persist across script fragments.
type Interpreter struct {
	env *Environment
}

// New creates an interpreter over env.
func New(env *Environment) *Interpreter {
	return &Interpreter{env: env}
}

// Env returns the interpreter's environment.
func (i *Interpreter) Env() *Environment {
	return i.env
}

// Evaluate runs tree against a fresh environment and returns the per-
// statement results.
func Evaluate(tree *parser.Tree) ([]Result, errors.MinicError) {
	return New(NewEnvironment()).Run(tree)
}

// Run evaluates the Program's statements in order, one Result per statement.
// The first error aborts the run; bindings made by prior statements remain
// in the environment.
func (i *Interpreter) Run(tree *parser.Tree) ([]Result, errors.MinicError) {
	root := tree.Node(tree.Root())
	if root.Kind != parser.Program {
		panic("interp: Run called on a non-Program root " + root.Kind.String())
	}

	results := make([]Result, 0, len(root.Children))
	for _, stmt := range root.Children {
		res, err := i.evalStatement(tree, stmt)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// evalStatement evaluates one top-level statement.
func (i *Interpreter) evalStatement(tree *parser.Tree, id parser.NodeID) (Result, errors.MinicError) {
	n := tree.Node(id)
	switch n.Kind {
	case parser.IntDeclaration:
		// Redeclaration overwrites silently.
		return i.bind(tree, n)

	case parser.AssignmentStmt:
		if !i.env.Declared(n.Text) {
			return Result{}, runtimeError(errors.UnknownVariable, n,
				"unknown variable '%s'", n.Text)
		}
		// Past the declaration check, assignment and declaration share the
		// same bind step.
		return i.bind(tree, n)

	case parser.ExpressionStmt:
		v, err := i.eval(tree, n.Children[0])
		if err != nil {
			return Result{}, err
		}
		return Result{Value: v, HasValue: true}, nil

	default:
		panic("interp: unhandled statement kind " + n.Kind.String())
	}
}

// bind evaluates the initializer child if present and binds the statement's
// variable, leaving it declared-but-unset otherwise.
func (i *Interpreter) bind(tree *parser.Tree, n *parser.Node) (Result, errors.MinicError) {
	if len(n.Children) == 0 {
		i.env.Declare(n.Text)
		return Result{Name: n.Text}, nil
	}
	v, err := i.eval(tree, n.Children[0])
	if err != nil {
		return Result{}, err
	}
	i.env.Bind(n.Text, v)
	return Result{Name: n.Text, Value: v, HasValue: true}, nil
}

// eval evaluates an expression node to an integer.
func (i *Interpreter) eval(tree *parser.Tree, id parser.NodeID) (int64, errors.MinicError) {
	n := tree.Node(id)
	switch n.Kind {
	case parser.IntLiteral:
		// The lexer guarantees base-10 digits; out-of-range literals get the
		// host's saturated value rather than an overflow error.
		v, _ := strconv.ParseInt(n.Text, 10, 64)
		return v, nil

	case parser.Identifier:
		v, set, declared := i.env.Lookup(n.Text)
		if !declared {
			return 0, runtimeError(errors.UnknownVariable, n,
				"unknown variable '%s'", n.Text)
		}
		if !set {
			return 0, runtimeError(errors.UnsetVariable, n,
				"variable '%s' has no value", n.Text)
		}
		return v, nil

	case parser.Additive, parser.Multiplicative:
		// Left before right: evaluation order is part of the contract.
		left, err := i.eval(tree, n.Children[0])
		if err != nil {
			return 0, err
		}
		right, err := i.eval(tree, n.Children[1])
		if err != nil {
			return 0, err
		}
		switch n.Text {
		case "+":
			return left + right, nil
		case "-":
			return left - right, nil
		case "*":
			return left * right, nil
		case "/":
			if right == 0 {
				return 0, runtimeError(errors.DivisionByZero, n, "division by zero")
			}
			// Go's integer division truncates toward zero.
			return left / right, nil
		default:
			panic("interp: unhandled operator " + n.Text)
		}

	default:
		panic("interp: unhandled expression kind " + n.Kind.String())
	}
}

func runtimeError(code errors.Code, n *parser.Node, format string, args ...interface{}) errors.MinicError {
	return &errors.RuntimeError{
		Position:  n.Pos,
		Condition: code,
		Msg:       fmt.Sprintf(format, args...),
	}
}
