package ast_test

import (
	"testing"

	"py2cpp/internal/ast"
	"py2cpp/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

// x = (1 + 2) * 3
func buildSample(t *testing.T) (*ast.Builder, ast.NodeID, ast.NodeID) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{}, nil)
	prog := b.NewProgram(sp(0, 0))
	one := b.NewLiteral("1", sp(5, 6), ast.Pos{Line: 1, Col: 6})
	two := b.NewLiteral("2", sp(9, 10), ast.Pos{Line: 1, Col: 10})
	add := b.NewBinary(ast.OpAdd, one, two, sp(5, 10), ast.Pos{Line: 1, Col: 8})
	three := b.NewLiteral("3", sp(14, 15), ast.Pos{Line: 1, Col: 15})
	mul := b.NewBinary(ast.OpMul, add, three, sp(4, 15), ast.Pos{Line: 1, Col: 13})
	assign := b.NewAssign("x", mul, sp(0, 15), ast.Pos{Line: 1, Col: 1})
	b.PushStmt(prog, assign)
	return b, prog, assign
}

func TestBuilderPayloads(t *testing.T) {
	b, prog, assign := buildSample(t)

	pd := b.Nodes.Program(prog)
	if pd == nil || len(pd.Stmts) != 1 || pd.Stmts[0] != assign {
		t.Fatalf("program payload = %+v", pd)
	}
	ad := b.Nodes.Assign(assign)
	if ad == nil || b.Str(ad.Name) != "x" {
		t.Fatalf("assign payload = %+v", ad)
	}
	bin := b.Nodes.Binary(ad.Value)
	if bin == nil || bin.Op != ast.OpMul {
		t.Fatalf("value should be '*', got %+v", bin)
	}
	if left := b.Nodes.Binary(bin.Left); left == nil || left.Op != ast.OpAdd {
		t.Fatalf("left should be '+'")
	}
	if b.Value(bin.Right) != "3" {
		t.Fatalf("right literal = %q", b.Value(bin.Right))
	}
	// аксессор чужого вида возвращает nil
	if b.Nodes.Print(assign) != nil || b.Nodes.Literal(prog) != nil {
		t.Fatalf("accessor must check kind")
	}
	if got := b.Nodes.Get(prog).Span; got != sp(0, 15) {
		t.Fatalf("program span = %v", got)
	}
}

func TestCountAndWalk(t *testing.T) {
	b, prog, _ := buildSample(t)
	if b.CountNodes() != 7 {
		t.Fatalf("CountNodes = %d, want 7", b.CountNodes())
	}
	var kinds []ast.Kind
	maxDepth := 0
	b.Walk(prog, func(id ast.NodeID, depth int) bool {
		kinds = append(kinds, b.Nodes.Get(id).Kind)
		maxDepth = max(maxDepth, depth)
		return true
	})
	want := []ast.Kind{ast.Program, ast.Assign, ast.BinaryOp, ast.BinaryOp, ast.Literal, ast.Literal, ast.Literal}
	if len(kinds) != len(want) {
		t.Fatalf("walk visited %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("walk order %v, want %v", kinds, want)
		}
	}
	if maxDepth != 4 {
		t.Fatalf("max depth = %d", maxDepth)
	}
}

func TestChildrenOfMalformedNodes(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	bin := b.NewBinary(ast.OpAdd, ast.NoNodeID, ast.NoNodeID, sp(0, 1), ast.Pos{Line: 1, Col: 1})
	if got := b.Children(bin); len(got) != 2 || got[0].IsValid() || got[1].IsValid() {
		t.Fatalf("children = %v", got)
	}
	raw := b.Nodes.New(ast.Print, sp(0, 1), ast.Pos{Line: 1, Col: 1}, ast.NoPayloadID)
	if got := b.Children(raw); len(got) != 1 || got[0].IsValid() {
		t.Fatalf("payload-less print children = %v", got)
	}
	if b.Children(ast.NodeID(999)) != nil {
		t.Fatalf("unknown id must have no children")
	}
}

func TestBinaryOpSymbols(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">="} {
		op, ok := ast.BinaryOperatorFromSymbol(sym)
		if !ok || op.String() != sym {
			t.Errorf("symbol %q -> %v, %v", sym, op, ok)
		}
		if op.IsArithmetic() == op.IsComparison() {
			t.Errorf("%q must be exactly one of arithmetic/comparison", sym)
		}
	}
	if _, ok := ast.BinaryOperatorFromSymbol("**"); ok {
		t.Errorf("** is not supported")
	}
	if ast.BinaryOperator(99).String() != "op(99)" {
		t.Errorf("unknown op string = %q", ast.BinaryOperator(99).String())
	}
	if ast.Kind(42).String() != "Kind(42)" || ast.ExprStmt.String() != "ExprStmt" {
		t.Errorf("kind names mismatch")
	}
}
