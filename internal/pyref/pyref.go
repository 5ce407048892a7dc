// Package pyref parses input with a full Python grammar and compares the
// statement shapes it sees against ours. The check is advisory: mismatches
// become warnings, never errors.
package pyref

import (
	"bytes"
	"fmt"

	pyast "github.com/go-python/gpython/ast"
	pyparser "github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// Stmt is the shape of one top-level statement as Python reads it.
type Stmt struct {
	Kind string
	Line int
	// Col is 0-based, as Python reports it.
	Col int
}

// Parse reads src with the Python grammar and classifies every top-level
// statement as Assign, Print, ExprStmt or the Python node type name.
func Parse(src []byte, filename string) (stmts []Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("python parser panicked: %v", r)
		}
	}()
	if len(src) > 0 && src[len(src)-1] != '\n' {
		src = append(bytes.Clone(src), '\n')
	}
	tree, err := pyparser.Parse(bytes.NewReader(src), filename, py.ExecMode)
	if err != nil {
		return nil, fmt.Errorf("python parse error: %w", err)
	}
	module, ok := tree.(*pyast.Module)
	if !ok {
		return nil, fmt.Errorf("expected *ast.Module, got %T", tree)
	}
	stmts = make([]Stmt, 0, len(module.Body))
	for _, s := range module.Body {
		stmts = append(stmts, Stmt{Kind: classify(s), Line: s.GetLineno(), Col: s.GetColOffset()})
	}
	return stmts, nil
}

func classify(stmt pyast.Stmt) string {
	switch s := stmt.(type) {
	case *pyast.Assign:
		if len(s.Targets) == 1 {
			if _, ok := s.Targets[0].(*pyast.Name); ok {
				return "Assign"
			}
		}
		return "MultiAssign"
	case *pyast.ExprStmt:
		if isPrintCall(s.Value) {
			return "Print"
		}
		return "ExprStmt"
	}
	return fmt.Sprintf("%T", stmt)
}

func isPrintCall(e pyast.Expr) bool {
	call, ok := e.(*pyast.Call)
	if !ok || len(call.Args) != 1 || len(call.Keywords) != 0 {
		return false
	}
	name, ok := call.Func.(*pyast.Name)
	return ok && string(name.Id) == "print"
}
