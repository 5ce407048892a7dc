package ast

// Children returns the child slots of a node in source order. Absent
// children come back as NoNodeID so callers can detect malformed trees.
func (b *Builder) Children(id NodeID) []NodeID {
	node := b.Nodes.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case Program:
		if d := b.Nodes.Program(id); d != nil {
			return d.Stmts
		}
	case Assign:
		if d := b.Nodes.Assign(id); d != nil {
			return []NodeID{d.Value}
		}
		return []NodeID{NoNodeID}
	case Print:
		if d := b.Nodes.Print(id); d != nil {
			return []NodeID{d.Arg}
		}
		return []NodeID{NoNodeID}
	case ExprStmt:
		if d := b.Nodes.ExprStmt(id); d != nil {
			return []NodeID{d.X}
		}
		return []NodeID{NoNodeID}
	case BinaryOp:
		if d := b.Nodes.Binary(id); d != nil {
			return []NodeID{d.Left, d.Right}
		}
		return []NodeID{NoNodeID, NoNodeID}
	}
	return nil
}

// Walk visits id and its descendants depth-first, pre-order. Returning
// false from fn skips the subtree of that node.
func (b *Builder) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	b.walk(id, 0, fn)
}

func (b *Builder) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !id.IsValid() || !fn(id, depth) {
		return
	}
	for _, child := range b.Children(id) {
		b.walk(child, depth+1, fn)
	}
}

// Value returns the associated value of a node: the name for Assign and
// Identifier, the raw text for Literal, the symbol for BinaryOp.
func (b *Builder) Value(id NodeID) string {
	node := b.Nodes.Get(id)
	if node == nil {
		return ""
	}
	switch node.Kind {
	case Assign:
		if d := b.Nodes.Assign(id); d != nil {
			return b.Str(d.Name)
		}
	case Identifier:
		if d := b.Nodes.Ident(id); d != nil {
			return b.Str(d.Name)
		}
	case Literal:
		if d := b.Nodes.Literal(id); d != nil {
			return b.Str(d.Raw)
		}
	case BinaryOp:
		if d := b.Nodes.Binary(id); d != nil {
			return d.Op.String()
		}
	}
	return ""
}
