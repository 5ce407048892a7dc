package codegen

import (
	"errors"
	"fmt"
	"strings"

	"py2cpp/internal/ast"
	"py2cpp/internal/sema"
	"py2cpp/internal/types"
)

// ErrSemanticErrors is returned when the checker reported errors for the program.
var ErrSemanticErrors = errors.New("program has semantic errors")

const defaultIndent = "    "

type Options struct {
	// Indent prefixes every statement inside main; four spaces when empty.
	Indent string
}

// binding is the C++ variable currently standing for a source name.
type binding struct {
	cpp string
	ty  types.Type
}

type Emitter struct {
	builder   *ast.Builder
	res       *sema.Result
	indent    string
	buf       strings.Builder
	vars      map[string]binding
	taken     map[string]struct{}
	needCmath bool
	err       error // первая ошибка из expr
}

// Emit renders program as C++ source. It refuses to run when res reports
// semantic errors.
func Emit(builder *ast.Builder, program ast.NodeID, res *sema.Result, opts Options) (string, error) {
	if res == nil {
		return "", errors.New("codegen: missing semantic result")
	}
	if res.Errors > 0 {
		return "", fmt.Errorf("codegen: %w (%d)", ErrSemanticErrors, res.Errors)
	}
	e := &Emitter{
		builder: builder,
		res:     res,
		indent:  opts.Indent,
		vars:    make(map[string]binding),
		taken:   make(map[string]struct{}),
	}
	if e.indent == "" {
		e.indent = defaultIndent
	}
	if builder == nil {
		return e.finish(), nil
	}
	e.reserveSourceNames(program)
	if err := e.emitStmts(program); err != nil {
		return "", err
	}
	if e.err != nil {
		return "", e.err
	}
	return e.finish(), nil
}

// reserveSourceNames marks every assigned name as taken so that suffixed
// variables never collide with a name the program declares later.
func (e *Emitter) reserveSourceNames(program ast.NodeID) {
	e.builder.Walk(program, func(id ast.NodeID, _ int) bool {
		if data := e.builder.Nodes.Assign(id); data != nil {
			e.taken[e.builder.Str(data.Name)] = struct{}{}
		}
		return true
	})
}

func (e *Emitter) emitStmts(program ast.NodeID) error {
	node := e.builder.Nodes.Get(program)
	if node == nil {
		return nil
	}
	if node.Kind != ast.Program {
		return e.emitStmt(program)
	}
	for _, stmt := range e.builder.Nodes.Program(program).Stmts {
		if err := e.emitStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) finish() string {
	var out strings.Builder
	out.WriteString("#include <iostream>\n")
	out.WriteString("#include <string>\n")
	if e.needCmath {
		out.WriteString("#include <cmath>\n")
	}
	out.WriteString("\nint main() {\n")
	out.WriteString(e.buf.String())
	fmt.Fprintf(&out, "%sreturn 0;\n", e.indent)
	out.WriteString("}\n")
	return out.String()
}

func (e *Emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Emitter) line(format string, args ...any) {
	e.buf.WriteString(e.indent)
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}
