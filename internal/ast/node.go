package ast

import (
	"fmt"

	"py2cpp/internal/source"
)

// Kind enumerates syntax node kinds.
type Kind uint8

const (
	// Program is the root; its payload is the ordered statement list.
	Program Kind = iota + 1
	// Assign binds a name to the value of one child expression.
	Assign
	// Print sends one child expression to the output sink.
	Print
	// BinaryOp applies an operator to exactly two children.
	BinaryOp
	// Identifier names a variable or built-in.
	Identifier
	// Literal carries the raw lexeme of a number or string.
	Literal
	// ExprStmt evaluates one child expression for nothing.
	ExprStmt
)

var kindNames = [...]string{
	Program:    "Program",
	Assign:     "Assign",
	Print:      "Print",
	BinaryOp:   "BinaryOp",
	Identifier: "Identifier",
	Literal:    "Literal",
	ExprStmt:   "ExprStmt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pos is the 1-based line/column of the token a node originates from.
type Pos struct {
	Line uint32
	Col  uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is the common header of every syntax node.
type Node struct {
	Kind    Kind
	Span    source.Span
	Pos     Pos
	Payload PayloadID
}
