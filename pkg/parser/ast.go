package parser

import (
	"fmt"
	"io"
	"strings"

	"minic/pkg/errors"
)

// NodeKind is the tag of an AST node variant.
type NodeKind uint8

const (
	Program NodeKind = iota
	IntDeclaration
	ExpressionStmt
	AssignmentStmt
	Additive
	Multiplicative
	Identifier
	IntLiteral

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	Program:        "Program",
	IntDeclaration: "IntDeclaration",
	ExpressionStmt: "ExpressionStmt",
	AssignmentStmt: "AssignmentStmt",
	Additive:       "Additive",
	Multiplicative: "Multiplicative",
	Identifier:     "Identifier",
	IntLiteral:     "IntLiteral",
}

func (k NodeKind) String() string {
	if int(k) >= len(nodeKindNames) {
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
	return nodeKindNames[k]
}

// NodeID is an index into a Tree's arena. The parent back-reference is stored
// as a NodeID rather than a pointer: children remain the sole ownership path
// and the back-reference is purely navigational.
type NodeID int32

// NoNode is the null NodeID (absent parent, failed rule probe).
const NoNode NodeID = -1

// Node is one AST node. Text holds the payload appropriate to the kind: the
// operator symbol for Additive/Multiplicative, the variable name for
// Identifier/IntDeclaration/AssignmentStmt, the digits for IntLiteral.
type Node struct {
	Kind     NodeKind
	Text     string
	Parent   NodeID
	Children []NodeID
	Pos      errors.Position
}

// Tree owns all nodes of one parse, allocated arena-style from a single
// slice. Nodes are immutable after parsing apart from the parent/children
// links populated during assembly.
type Tree struct {
	nodes []Node
	root  NodeID
}

// NewTree creates an empty tree with pre-grown capacity.
func NewTree() *Tree {
	return &Tree{
		nodes: make([]Node, 0, 64),
		root:  NoNode,
	}
}

// alloc creates a parentless node in the arena and returns its id.
func (t *Tree) alloc(kind NodeKind, text string, pos errors.Position) NodeID {
	t.nodes = append(t.nodes, Node{
		Kind:   kind,
		Text:   text,
		Parent: NoNode,
		Pos:    pos,
	})
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node for id. The pointer stays valid until the next
// allocation, so callers must not retain it across parses.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Root returns the Program node's id.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of allocated nodes, including any abandoned by
// backtracked rule probes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// addChild appends child to parent's ordered children and sets the child's
// parent back-reference in the same step.
func (t *Tree) addChild(parent, child NodeID) {
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	t.nodes[child].Parent = parent
}

// newBinary allocates a binary operator node. Binary nodes always have
// exactly two children; the constructor is the only way to make one.
func (t *Tree) newBinary(kind NodeKind, op string, left, right NodeID, pos errors.Position) NodeID {
	if kind != Additive && kind != Multiplicative {
		panic("parser: newBinary called with non-binary kind " + kind.String())
	}
	id := t.alloc(kind, op, pos)
	t.addChild(id, left)
	t.addChild(id, right)
	return id
}

// Dump writes a depth-first dump of the tree: one line per node, a tab of
// indentation per depth level, then the node kind and payload text. For
// diagnostics only; evaluation never consults this form.
func (t *Tree) Dump(w io.Writer) {
	if t.root == NoNode {
		return
	}
	t.dumpNode(w, t.root, 0)
}

func (t *Tree) dumpNode(w io.Writer, id NodeID, depth int) {
	n := &t.nodes[id]
	line := strings.Repeat("\t", depth) + n.Kind.String()
	if n.Text != "" {
		line += " " + n.Text
	}
	fmt.Fprintln(w, line)
	for _, c := range n.Children {
		t.dumpNode(w, c, depth+1)
	}
}

// String returns the dump as a string.
func (t *Tree) String() string {
	var b strings.Builder
	t.Dump(&b)
	return b.String()
}
