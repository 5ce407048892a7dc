package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/lexer"
	"py2cpp/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

type parsed struct {
	b       *ast.Builder
	program ast.NodeID
	bag     *diag.Bag
	result  Result
}

func parseSource(t *testing.T, src string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(src)))

	lexBag := diag.NewBag(100)
	toks := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: lexBag}}).Tokenize()
	if lexBag.Len() != 0 {
		t.Fatalf("unexpected lexical diagnostics: %s", diagnosticsSummary(lexBag))
	}

	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}
	opts.File = file.ID
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(context.Background(), toks, b, opts)
	return parsed{b: b, program: res.Program, bag: bag, result: res}
}

func (p parsed) stmts() []ast.NodeID {
	return p.b.Nodes.Program(p.program).Stmts
}

// paren печатает выражение с явными скобками вокруг каждого бинарного узла.
func paren(b *ast.Builder, id ast.NodeID) string {
	if bin := b.Nodes.Binary(id); bin != nil {
		return "(" + paren(b, bin.Left) + " " + bin.Op.String() + " " + paren(b, bin.Right) + ")"
	}
	return b.Value(id)
}

// stmtValue returns the expression child of a statement.
func stmtValue(b *ast.Builder, id ast.NodeID) ast.NodeID {
	switch b.Nodes.Get(id).Kind {
	case ast.Assign:
		return b.Nodes.Assign(id).Value
	case ast.Print:
		return b.Nodes.Print(id).Arg
	case ast.ExprStmt:
		return b.Nodes.ExprStmt(id).X
	}
	return ast.NoNodeID
}
