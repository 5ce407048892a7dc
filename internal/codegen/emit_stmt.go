package codegen

import (
	"fmt"

	"py2cpp/internal/ast"
	"py2cpp/internal/types"
)

func (e *Emitter) emitStmt(id ast.NodeID) error {
	node := e.builder.Nodes.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case ast.Assign:
		return e.emitAssign(id)
	case ast.Print:
		if data := e.builder.Nodes.Print(id); data != nil {
			e.line("std::cout << %s << std::endl;", e.printable(data.Arg))
			return nil
		}
	case ast.ExprStmt:
		if data := e.builder.Nodes.ExprStmt(id); data != nil {
			e.line("%s;", e.expr(data.X))
			return nil
		}
	}
	e.line("%s", unsupported(node.Kind))
	return nil
}

// emitAssign declares a variable on first binding, assigns on re-binding
// with the same type and shadows with a suffixed variable otherwise.
func (e *Emitter) emitAssign(id ast.NodeID) error {
	data := e.builder.Nodes.Assign(id)
	if data == nil {
		e.line("%s", unsupported(ast.Assign))
		return nil
	}
	name := e.builder.Str(data.Name)
	ty := e.res.TypeOf(data.Value)
	cppTy, ok := cppType(ty)
	if !ok {
		return fmt.Errorf("codegen: cannot declare '%s' of type %s", name, ty)
	}
	value := e.expr(data.Value)

	prev, bound := e.vars[name]
	switch {
	case bound && prev.ty == ty:
		e.line("%s = %s;", prev.cpp, value)
		return nil
	case bound:
		fresh := e.fresh(name)
		e.vars[name] = binding{cpp: fresh, ty: ty}
		e.line("%s %s = %s;", cppTy, fresh, value)
	default:
		decl := e.declName(name)
		e.vars[name] = binding{cpp: decl, ty: ty}
		e.line("%s %s = %s;", cppTy, decl, value)
	}
	return nil
}

// printable renders arg for std::cout the way Python would print it.
func (e *Emitter) printable(arg ast.NodeID) string {
	x := e.expr(arg)
	if e.res.TypeOf(arg) == types.Bool {
		return fmt.Sprintf(`(%s ? "True" : "False")`, x)
	}
	return x
}

func cppType(t types.Type) (string, bool) {
	switch t {
	case types.Int:
		return "long long", true
	case types.Float:
		return "double", true
	case types.String, types.Function:
		return "std::string", true
	case types.Bool:
		return "bool", true
	}
	return "", false
}

func unsupported(kind ast.Kind) string {
	return fmt.Sprintf("/* unsupported node: %s */", kind)
}
