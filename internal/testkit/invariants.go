// Package testkit holds structural checks shared by parser, fuzz and driver
// tests.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"py2cpp/internal/ast"
	"py2cpp/internal/source"
)

// CheckTree verifies a parsed program:
//  1. every node has the arity of its kind and no missing child
//  2. statements sit under Program, expressions under statements or operators
//  3. spans point into sf and children lie inside their parent, in order
//  4. positions agree with spans: leaves, Assign and Print start their span,
//     an operator sits between its operands
//  5. no node is reachable twice
func CheckTree(b *ast.Builder, program ast.NodeID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	root := b.Nodes.Get(program)
	if root == nil || root.Kind != ast.Program {
		return fmt.Errorf("root %d is not a Program", program)
	}
	c := checker{b: b, sf: sf, seen: make(map[ast.NodeID]bool)}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c.limit = lenContent
	c.node(program, noParent)
	return errors.Join(c.errs...)
}

// CheckComplete is CheckTree plus: every allocated node is reachable from
// program. Only holds for inputs without syntax errors, since recovery
// abandons partially built statements.
func CheckComplete(b *ast.Builder, program ast.NodeID, sf *source.File) error {
	if err := CheckTree(b, program, sf); err != nil {
		return err
	}
	reached := 0
	b.Walk(program, func(ast.NodeID, int) bool {
		reached++
		return true
	})
	if total := b.CountNodes(); reached != total {
		return fmt.Errorf("%d of %d nodes unreachable from the program", total-reached, total)
	}
	return nil
}

// noParent marks the root in node.
const noParent ast.Kind = 0

type checker struct {
	b     *ast.Builder
	sf    *source.File
	limit uint32
	seen  map[ast.NodeID]bool
	errs  []error
}

func (c *checker) fail(id ast.NodeID, format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("node %d: %s", id, fmt.Sprintf(format, args...)))
}

func arity(k ast.Kind) int {
	switch k {
	case ast.Assign, ast.Print, ast.ExprStmt:
		return 1
	case ast.BinaryOp:
		return 2
	case ast.Identifier, ast.Literal:
		return 0
	}
	return -1
}

func isStmt(k ast.Kind) bool {
	return k == ast.Assign || k == ast.Print || k == ast.ExprStmt
}

func isExpr(k ast.Kind) bool {
	return k == ast.BinaryOp || k == ast.Identifier || k == ast.Literal
}

func (c *checker) node(id ast.NodeID, parent ast.Kind) {
	if c.seen[id] {
		c.fail(id, "reachable more than once")
		return
	}
	c.seen[id] = true
	n := c.b.Nodes.Get(id)
	if n == nil {
		c.fail(id, "missing node")
		return
	}

	switch {
	case parent == noParent:
	case parent == ast.Program && !isStmt(n.Kind):
		c.fail(id, "%s directly under Program", n.Kind)
	case parent != ast.Program && !isExpr(n.Kind):
		c.fail(id, "%s under %s", n.Kind, parent)
	}

	children := c.b.Children(id)
	if want := arity(n.Kind); n.Kind != ast.Program && len(children) != want {
		c.fail(id, "%s has %d children, want %d", n.Kind, len(children), want)
	}

	c.span(id, n)
	c.pos(id, n)

	var prev *ast.Node
	for _, child := range children {
		if !child.IsValid() {
			c.fail(id, "%s has a missing child", n.Kind)
			continue
		}
		cn := c.b.Nodes.Get(child)
		if cn != nil {
			if n.Kind != ast.Program || n.Span.End > 0 {
				if !n.Span.Contains(cn.Span) {
					c.fail(child, "span %v outside parent %s span %v", cn.Span, n.Kind, n.Span)
				}
			}
			if prev != nil && prev.Span.End > cn.Span.Start {
				c.fail(child, "span %v overlaps previous sibling %v", cn.Span, prev.Span)
			}
			prev = cn
		}
		c.node(child, n.Kind)
	}
}

func (c *checker) span(id ast.NodeID, n *ast.Node) {
	sp := n.Span
	if sp.File != c.sf.ID {
		c.fail(id, "span file %d, want %d", sp.File, c.sf.ID)
	}
	if sp.Start > sp.End || sp.End > c.limit {
		c.fail(id, "span %v outside content of %d bytes", sp, c.limit)
	}
	if n.Kind != ast.Program && sp.Empty() {
		c.fail(id, "empty %s span", n.Kind)
	}
}

func less(a, b source.LineCol) bool {
	return a.Line < b.Line || a.Line == b.Line && a.Col < b.Col
}

func (c *checker) pos(id ast.NodeID, n *ast.Node) {
	got := source.LineCol{Line: n.Pos.Line, Col: n.Pos.Col}
	if got.Line == 0 || got.Col == 0 {
		c.fail(id, "position %s is not 1-based", n.Pos)
		return
	}
	if n.Span.End > c.limit || n.Span.Start > n.Span.End {
		return
	}
	start := c.sf.Position(n.Span.Start)
	end := c.sf.Position(n.Span.End)
	switch n.Kind {
	case ast.Program:
		if got != (source.LineCol{Line: 1, Col: 1}) {
			c.fail(id, "program position %s, want 1:1", n.Pos)
		}
	case ast.Assign, ast.Print, ast.Identifier, ast.Literal:
		if got != start {
			c.fail(id, "%s position %s, span starts at %d:%d", n.Kind, n.Pos, start.Line, start.Col)
		}
	case ast.BinaryOp:
		if !less(start, got) || !less(got, end) {
			c.fail(id, "operator position %s outside %d:%d..%d:%d", n.Pos, start.Line, start.Col, end.Line, end.Col)
		}
	case ast.ExprStmt:
		// открывающие скобки не входят в span выражения
		if less(start, got) {
			c.fail(id, "statement position %s after its span start %d:%d", n.Pos, start.Line, start.Col)
		}
	}
}
