package ast

import (
	"py2cpp/internal/source"
)

// Nodes manages allocation of nodes and their per-kind payloads.
type Nodes struct {
	Arena     *Arena[Node]
	Programs  *Arena[ProgramData]
	Assigns   *Arena[AssignData]
	Prints    *Arena[PrintData]
	ExprStmts *Arena[ExprStmtData]
	Binaries  *Arena[BinaryData]
	Idents    *Arena[IdentData]
	Literals  *Arena[LiteralData]
}

// NewNodes creates per-kind arenas preallocated to capHint (1<<8 when zero).
func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Nodes{
		Arena:     NewArena[Node](capHint),
		Programs:  NewArena[ProgramData](1),
		Assigns:   NewArena[AssignData](capHint),
		Prints:    NewArena[PrintData](capHint),
		ExprStmts: NewArena[ExprStmtData](capHint),
		Binaries:  NewArena[BinaryData](capHint),
		Idents:    NewArena[IdentData](capHint),
		Literals:  NewArena[LiteralData](capHint),
	}
}

// New allocates a bare node header. Payload must belong to the arena of kind.
func (n *Nodes) New(kind Kind, span source.Span, pos Pos, payload PayloadID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Pos:     pos,
		Payload: payload,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

func (n *Nodes) payload(id NodeID, kind Kind) (PayloadID, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != kind || !node.Payload.IsValid() {
		return NoPayloadID, false
	}
	return node.Payload, true
}

// Program returns the payload of a Program node, or nil for any other node.
func (n *Nodes) Program(id NodeID) *ProgramData {
	if p, ok := n.payload(id, Program); ok {
		return n.Programs.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) Assign(id NodeID) *AssignData {
	if p, ok := n.payload(id, Assign); ok {
		return n.Assigns.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) Print(id NodeID) *PrintData {
	if p, ok := n.payload(id, Print); ok {
		return n.Prints.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) ExprStmt(id NodeID) *ExprStmtData {
	if p, ok := n.payload(id, ExprStmt); ok {
		return n.ExprStmts.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) Binary(id NodeID) *BinaryData {
	if p, ok := n.payload(id, BinaryOp); ok {
		return n.Binaries.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) Ident(id NodeID) *IdentData {
	if p, ok := n.payload(id, Identifier); ok {
		return n.Idents.Get(uint32(p))
	}
	return nil
}

func (n *Nodes) Literal(id NodeID) *LiteralData {
	if p, ok := n.payload(id, Literal); ok {
		return n.Literals.Get(uint32(p))
	}
	return nil
}
