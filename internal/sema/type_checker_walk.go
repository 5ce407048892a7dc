package sema

import (
	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/symbols"
	"py2cpp/internal/types"
)

// visit infers the type of id and records it. A panic while classifying the
// node is turned into a diagnostic and the node becomes Unknown.
func (tc *typeChecker) visit(id ast.NodeID) (result types.Type) {
	node := tc.builder.Nodes.Get(id)
	if node == nil {
		return types.Unknown
	}
	defer func() {
		if r := recover(); r != nil {
			tc.report(diag.SemaError, node.Span, "error during semantic verification: %v", r)
			result = types.Unknown
		}
		tc.result.NodeTypes[id] = result
	}()

	switch node.Kind {
	case ast.Program:
		tc.visitProgram(id, node)
		return types.Unknown
	case ast.Assign:
		return tc.visitAssign(id, node)
	case ast.Print:
		return tc.visitPrint(id, node)
	case ast.ExprStmt:
		return tc.visitExprStmt(id, node)
	case ast.BinaryOp:
		return tc.visitBinary(id, node)
	case ast.Identifier:
		return tc.visitIdent(id, node)
	case ast.Literal:
		return tc.visitLiteral(id, node)
	}
	tc.report(diag.SemaMalformedNode, node.Span, "malformed %s node: unknown node kind", node.Kind)
	return types.Unknown
}

func (tc *typeChecker) visitProgram(id ast.NodeID, node *ast.Node) {
	data := tc.builder.Nodes.Program(id)
	if data == nil {
		tc.malformed(node, "missing statement list")
		return
	}
	for _, stmt := range data.Stmts {
		if !stmt.IsValid() {
			tc.malformed(node, "missing statement")
			continue
		}
		tc.visit(stmt)
	}
}

func (tc *typeChecker) visitAssign(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.Assign(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	if !tc.present(data.Value) {
		tc.malformed(node, "missing value")
		return types.Unknown
	}
	valueType := tc.visit(data.Value)
	name := tc.builder.Interner.MustLookup(data.Name)
	if valueType == types.Function {
		tc.warn(diag.SemaBuiltinAsValue, tc.span(data.Value), "variable '%s' holds a built-in function; it is emitted as its textual form", name)
	}
	tc.result.Symbols.Set(name, valueType, node.Span)
	return valueType
}

func (tc *typeChecker) visitPrint(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.Print(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	if !tc.present(data.Arg) {
		tc.malformed(node, "missing argument")
		return types.Unknown
	}
	// print принимает аргумент любого типа
	tc.visit(data.Arg)
	return types.Void
}

func (tc *typeChecker) visitExprStmt(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.ExprStmt(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	if !tc.present(data.X) {
		tc.malformed(node, "missing expression")
		return types.Unknown
	}
	return tc.visit(data.X)
}

func (tc *typeChecker) visitIdent(id ast.NodeID, node *ast.Node) types.Type {
	data := tc.builder.Nodes.Ident(id)
	if data == nil {
		tc.malformed(node, "missing payload")
		return types.Unknown
	}
	name := tc.builder.Interner.MustLookup(data.Name)
	if builtin, ok := symbols.LookupBuiltin(name); ok {
		return builtin.Type
	}
	if ty, ok := tc.result.Symbols.TypeOf(name); ok {
		return ty
	}
	tc.report(diag.SemaUndefinedVariable, node.Span, "undefined variable '%s'", name)
	return types.Unknown
}

// present reports whether child refers to an allocated node.
func (tc *typeChecker) present(child ast.NodeID) bool {
	return child.IsValid() && tc.builder.Nodes.Get(child) != nil
}

func (tc *typeChecker) span(id ast.NodeID) source.Span {
	if node := tc.builder.Nodes.Get(id); node != nil {
		return node.Span
	}
	return source.Span{}
}
