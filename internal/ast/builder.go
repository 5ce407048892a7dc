package ast

import (
	"py2cpp/internal/source"
)

type Hints struct{ Nodes uint }

// Builder owns every node of one compilation unit. Nodes are built bottom-up
// and never mutated once their parent exists.
type Builder struct {
	Nodes    *Nodes
	Interner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Nodes:    NewNodes(hints.Nodes),
		Interner: interner,
	}
}

func (b *Builder) NewProgram(sp source.Span) NodeID {
	p := b.Nodes.Programs.Allocate(ProgramData{})
	return b.Nodes.New(Program, sp, Pos{Line: 1, Col: 1}, PayloadID(p))
}

// PushStmt appends stmt to the program and widens the program span.
func (b *Builder) PushStmt(program, stmt NodeID) {
	data := b.Nodes.Program(program)
	if data == nil {
		return
	}
	data.Stmts = append(data.Stmts, stmt)
	if node, child := b.Nodes.Get(program), b.Nodes.Get(stmt); child != nil {
		if len(data.Stmts) == 1 {
			node.Span = child.Span
		} else {
			node.Span = node.Span.Cover(child.Span)
		}
	}
}

func (b *Builder) NewAssign(name string, value NodeID, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.Assigns.Allocate(AssignData{Name: b.Interner.Intern(name), Value: value})
	return b.Nodes.New(Assign, sp, pos, PayloadID(p))
}

func (b *Builder) NewPrint(arg NodeID, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.Prints.Allocate(PrintData{Arg: arg})
	return b.Nodes.New(Print, sp, pos, PayloadID(p))
}

func (b *Builder) NewExprStmt(x NodeID, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.ExprStmts.Allocate(ExprStmtData{X: x})
	return b.Nodes.New(ExprStmt, sp, pos, PayloadID(p))
}

func (b *Builder) NewBinary(op BinaryOperator, left, right NodeID, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return b.Nodes.New(BinaryOp, sp, pos, PayloadID(p))
}

func (b *Builder) NewIdent(name string, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.Idents.Allocate(IdentData{Name: b.Interner.Intern(name)})
	return b.Nodes.New(Identifier, sp, pos, PayloadID(p))
}

func (b *Builder) NewLiteral(raw string, sp source.Span, pos Pos) NodeID {
	p := b.Nodes.Literals.Allocate(LiteralData{Raw: b.Interner.Intern(raw)})
	return b.Nodes.New(Literal, sp, pos, PayloadID(p))
}

// Str resolves an interned name or lexeme.
func (b *Builder) Str(id source.StringID) string {
	s, _ := b.Interner.Lookup(id)
	return s
}

// CountNodes reports how many nodes were allocated.
func (b *Builder) CountNodes() int {
	return b.Nodes.Arena.Len()
}
