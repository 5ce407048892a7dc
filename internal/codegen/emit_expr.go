package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"py2cpp/internal/ast"
	"py2cpp/internal/symbols"
	"py2cpp/internal/types"
)

// builtinText is how Python prints the built-in print function.
const builtinText = "<built-in function %s>"

func (e *Emitter) expr(id ast.NodeID) string {
	node := e.builder.Nodes.Get(id)
	if node == nil {
		return unsupported(ast.Kind(0))
	}
	switch node.Kind {
	case ast.Literal:
		raw := e.builder.Value(id)
		switch e.res.TypeOf(id) {
		case types.String:
			return cppString(raw)
		case types.Int:
			return e.intLiteral(raw)
		}
		return raw
	case ast.Identifier:
		name := e.builder.Value(id)
		if _, ok := symbols.LookupBuiltin(name); ok {
			return cppString(`"` + fmt.Sprintf(builtinText, name) + `"`)
		}
		if b, ok := e.vars[name]; ok {
			return b.cpp
		}
		return name
	case ast.BinaryOp:
		data := e.builder.Nodes.Binary(id)
		if data == nil {
			break
		}
		left, right := e.expr(data.Left), e.expr(data.Right)
		if data.Op == ast.OpMod && (e.res.TypeOf(data.Left) == types.Float || e.res.TypeOf(data.Right) == types.Float) {
			e.needCmath = true
			return fmt.Sprintf("std::fmod(%s, %s)", left, right)
		}
		return fmt.Sprintf("(%s %s %s)", left, data.Op, right)
	}
	return unsupported(node.Kind)
}

// intLiteral respells an int literal in plain decimal: C++ reads a leading
// zero as octal. Values outside long long cannot be emitted.
func (e *Emitter) intLiteral(raw string) string {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.fail(fmt.Errorf("codegen: integer literal %s does not fit in long long", raw))
		return raw
	}
	return strconv.FormatInt(v, 10)
}

// cppString converts a quoted Python literal into a std::string expression.
// Escapes are kept as written; a bare '"' inside single quotes is escaped.
func cppString(raw string) string {
	inner := raw
	if len(raw) >= 2 {
		inner = raw[1 : len(raw)-1]
	}
	var sb strings.Builder
	sb.Grow(len(inner) + 16)
	sb.WriteString(`std::string("`)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner):
			sb.WriteByte(c)
			i++
			sb.WriteByte(inner[i])
		case c == '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteString(`")`)
	return sb.String()
}
