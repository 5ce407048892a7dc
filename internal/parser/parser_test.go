package parser

import (
	"strings"
	"testing"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/lexer"
	"py2cpp/internal/source"
)

func TestAssignLiteral(t *testing.T) {
	p := parseSource(t, "x = 5", Options{})
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
	}
	stmts := p.stmts()
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	as := p.b.Nodes.Assign(stmts[0])
	if as == nil || p.b.Str(as.Name) != "x" {
		t.Fatalf("expected Assign(x), got %v", p.b.Nodes.Get(stmts[0]).Kind)
	}
	lit := p.b.Nodes.Get(as.Value)
	if lit.Kind != ast.Literal || p.b.Value(as.Value) != "5" {
		t.Fatalf("expected Literal(5), got %v %q", lit.Kind, p.b.Value(as.Value))
	}
	if lit.Pos != (ast.Pos{Line: 1, Col: 5}) {
		t.Fatalf("literal pos = %v", lit.Pos)
	}
}

func TestGroupedPrecedence(t *testing.T) {
	p := parseSource(t, "x = (1 + 2) * 3", Options{})
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
	}
	val := p.b.Nodes.Assign(p.stmts()[0]).Value
	mul := p.b.Nodes.Binary(val)
	if mul == nil || mul.Op != ast.OpMul {
		t.Fatalf("root should be '*'")
	}
	add := p.b.Nodes.Binary(mul.Left)
	if add == nil || add.Op != ast.OpAdd || p.b.Value(add.Left) != "1" || p.b.Value(add.Right) != "2" {
		t.Fatalf("left should be 1 + 2, got %s", paren(p.b, mul.Left))
	}
	if p.b.Value(mul.Right) != "3" {
		t.Fatalf("right should be 3")
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b % c * d", "(((a / b) % c) * d)"},
		{"a + b * (c - d) / e", "(a + ((b * (c - d)) / e))"},
		{"((x))", "x"},
		{"'s' + \"t\"", "('s' + \"t\")"},
		{"1.5 * 2", "(1.5 * 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseSource(t, tt.input, Options{})
			if p.bag.Len() != 0 {
				t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
			}
			stmts := p.stmts()
			if len(stmts) != 1 || p.b.Nodes.Get(stmts[0]).Kind != ast.ExprStmt {
				t.Fatalf("expected single ExprStmt")
			}
			if got := paren(p.b, stmtValue(p.b, stmts[0])); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatementSequence(t *testing.T) {
	p := parseSource(t, "x = 5\ny = x + 2.0\nprint(y)\n(x)", Options{})
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
	}
	want := []ast.Kind{ast.Assign, ast.Assign, ast.Print, ast.ExprStmt}
	stmts := p.stmts()
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements", len(stmts))
	}
	for i, k := range want {
		if got := p.b.Nodes.Get(stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: %v, want %v", i, got, k)
		}
	}
	pr := p.b.Nodes.Get(stmts[2])
	if pr.Pos != (ast.Pos{Line: 3, Col: 1}) || pr.Span.Len() != uint32(len("print(y)")) {
		t.Errorf("print pos=%v span=%v", pr.Pos, pr.Span)
	}
}

func TestEmptyInput(t *testing.T) {
	p := parseSource(t, "", Options{})
	if p.bag.Len() != 0 || len(p.stmts()) != 0 {
		t.Fatalf("empty input: %d stmts, diags %s", len(p.stmts()), diagnosticsSummary(p.bag))
	}
	if p.b.Nodes.Get(p.program).Kind != ast.Program {
		t.Fatalf("root must be Program")
	}
}

func TestUnclosedPrint(t *testing.T) {
	p := parseSource(t, "print(", Options{})
	if p.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %s", diagnosticsSummary(p.bag))
	}
	d := p.bag.Items()[0]
	if d.Code != diag.SynUnclosedParen || !strings.Contains(d.Message, "')'") {
		t.Fatalf("diagnostic = [%s] %s", d.Code.ID(), d.Message)
	}
	if d.Primary.Start != 6 {
		t.Fatalf("diagnostic should point after '(' got %v", d.Primary)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ")" {
		t.Fatalf("expected insert-')' fix, got %+v", d.Fixes)
	}
	if len(p.stmts()) != 0 {
		t.Fatalf("no statement expected")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCodes []diag.Code
		wantStmts int
	}{
		{"missing close paren in group", "x = (1 + 2", []diag.Code{diag.SynUnclosedParen}, 0},
		{"missing open paren", "print 1", []diag.Code{diag.SynExpectDelimiter}, 0},
		{"missing operand", "x = 1 +", []diag.Code{diag.SynExpectExpression}, 0},
		{"keyword is not an expression", "x = None", []diag.Code{diag.SynExpectExpression}, 0},
		{"unexpected operator", "* 2", []diag.Code{diag.SynUnexpectedToken}, 1},
		{"power unsupported", "x = 2 ** 3", []diag.Code{diag.SynUnexpectedToken}, 2},
		{"recovery keeps later statements", "print(1 2)\ny = 3", []diag.Code{diag.SynUnclosedParen, diag.SynUnexpectedToken}, 1},
		{"comparison off by default", "a < b", []diag.Code{diag.SynUnexpectedToken}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.input, Options{})
			if p.bag.Len() != len(tt.wantCodes) {
				t.Fatalf("got %s", diagnosticsSummary(p.bag))
			}
			for i, code := range tt.wantCodes {
				if got := p.bag.Items()[i].Code; got != code {
					t.Errorf("diag %d: %s, want %s (%s)", i, got.ID(), code.ID(), diagnosticsSummary(p.bag))
				}
			}
			if len(p.stmts()) != tt.wantStmts {
				t.Errorf("statements = %d, want %d", len(p.stmts()), tt.wantStmts)
			}
			if p.result.Errors != uint(len(tt.wantCodes)) {
				t.Errorf("Errors = %d", p.result.Errors)
			}
		})
	}
}

func TestComparisonsOption(t *testing.T) {
	p := parseSource(t, "x = a + 1 < b * 2 != c", Options{Comparisons: true})
	if p.bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
	}
	got := paren(p.b, stmtValue(p.b, p.stmts()[0]))
	if want := "(((a + 1) < (b * 2)) != c)"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMaxErrors(t *testing.T) {
	p := parseSource(t, ") ) ) )", Options{MaxErrors: 2})
	if p.bag.Len() != 2 || p.result.Errors != 2 {
		t.Fatalf("expected 2 diagnostics, got %s", diagnosticsSummary(p.bag))
	}
}

func TestNilReporterStillCounts(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("nil.py", []byte(") x = 1 )")))
	toks := lexer.New(file, lexer.Options{}).Tokenize()
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(t.Context(), toks, b, Options{})
	if res.Errors != 2 || len(b.Nodes.Program(res.Program).Stmts) != 1 {
		t.Fatalf("errors=%d stmts=%d", res.Errors, len(b.Nodes.Program(res.Program).Stmts))
	}
}
