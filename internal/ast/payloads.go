package ast

import "py2cpp/internal/source"

// ProgramData holds top-level statements in source order.
type ProgramData struct {
	Stmts []NodeID
}

type AssignData struct {
	Name  source.StringID
	Value NodeID
}

type PrintData struct {
	Arg NodeID
}

type ExprStmtData struct {
	X NodeID
}

type BinaryData struct {
	Op    BinaryOperator
	Left  NodeID
	Right NodeID
}

type IdentData struct {
	Name source.StringID
}

// LiteralData keeps the lexeme exactly as written (quotes included for strings).
type LiteralData struct {
	Raw source.StringID
}
