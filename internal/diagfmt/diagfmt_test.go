package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/symbols"
	"py2cpp/internal/token"
	"py2cpp/internal/types"
)

func sampleBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 'é' + $\nprint(y"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError, Code: diag.LexUnexpectedChar,
		Primary: source.Span{File: id, Start: 11, End: 12}, Message: "unexpected character '$'",
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError, Code: diag.SynUnclosedParen,
		Primary: source.Span{File: id, Start: 20, End: 20}, Message: "expected ')'",
		Notes:   []diag.Note{{Span: source.Span{File: id, Start: 18, End: 19}, Msg: "'(' opened here"}},
		Fixes:   []diag.Fix{{Title: "insert ')'", Edits: []diag.FixEdit{{Span: source.Span{File: id, Start: 20, End: 20}, NewText: ")"}}}},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning, Code: diag.SemaBuiltinAsValue,
		Primary: source.Span{File: id, Start: 0, End: 1}, Message: "variable 'x' holds a built-in function",
	})
	return bag, fs
}

func TestPrettyAlignsCaretByCharacters(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()

	for _, want := range []string{
		"test.py:1:11: ERROR LEX1001: unexpected character '$'\n",
		"   1 | x = 'é' + $\n",
		"     |           ^\n",
		"test.py:2:8: ERROR SYN2006: expected ')'\n",
		"  note: test.py:2:6: '(' opened here\n",
		"  fix: insert ')'\n",
		"test.py:1:1: WARNING SEM3008:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color disabled but escape codes present")
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes:\n%s", buf.String())
	}
}

func TestShortGroupsByStage(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeAuto)
	want := "lexical errors (1):\n" +
		"  test.py:1:11: error LEX1001: unexpected character '$'\n" +
		"syntactic errors (1):\n" +
		"  test.py:2:8: error SYN2006: expected ')'\n" +
		"semantic diagnostics (1):\n" +
		"  test.py:1:1: warning SEM3008: variable 'x' holds a built-in function\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeNotes: true, IncludeFixes: true, Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || out.Diagnostics[1].Stage != "syntactic" || out.Diagnostics[1].Location.Column != 8 {
		t.Fatalf("output = %+v", out)
	}
	if len(out.Diagnostics[1].Notes) != 1 || out.Diagnostics[1].Fixes[0].Edits[0].NewText != ")" {
		t.Fatalf("notes/fixes missing: %+v", out.Diagnostics[1])
	}
}

func TestTokens(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Line: 1, Col: 1},
		{Kind: token.AssignOp, Text: "=", Line: 1, Col: 3},
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "  1: IDENT      \"x\"          at 1:1\n") {
		t.Fatalf("pretty = %q", buf.String())
	}
	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || len(out) != 2 || out[1].Kind != "ASSIGNOP" {
		t.Fatalf("json = %s (%v)", buf.String(), err)
	}
}

type fixedTypes map[ast.NodeID]types.Type

func (f fixedTypes) TypeOf(id ast.NodeID) types.Type { return f[id] }

func TestASTPretty(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	prog := b.NewProgram(source.Span{})
	one := b.NewLiteral("1", source.Span{}, ast.Pos{Line: 1, Col: 5})
	two := b.NewLiteral("2.0", source.Span{}, ast.Pos{Line: 1, Col: 9})
	sum := b.NewBinary(ast.OpAdd, one, two, source.Span{}, ast.Pos{Line: 1, Col: 5})
	assign := b.NewAssign("x", sum, source.Span{}, ast.Pos{Line: 1, Col: 1})
	b.PushStmt(prog, assign)
	b.PushStmt(prog, b.NewPrint(ast.NoNodeID, source.Span{}, ast.Pos{Line: 2, Col: 1}))

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, prog, nil); err != nil {
		t.Fatal(err)
	}
	want := "Program\n" +
		"├─ Assign(x) @1:1\n" +
		"│  └─ BinaryOp(+) @1:5\n" +
		"│     ├─ Literal(1) @1:5\n" +
		"│     └─ Literal(2.0) @1:9\n" +
		"└─ Print @2:1\n" +
		"   └─ <missing>\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	typed := fixedTypes{assign: types.Float, sum: types.Float, one: types.Int, two: types.Float}
	if err := FormatASTJSON(&buf, b, prog, typed); err != nil {
		t.Fatal(err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Children[0].Type != "float" || out.Children[0].Children[0].Children[0].Type != "int" {
		t.Fatalf("json = %s", buf.String())
	}
}

func TestFormatSymbols(t *testing.T) {
	table := symbols.NewTable(2)
	table.Set("x", types.Int, source.Span{})
	table.Set("y", types.String, source.Span{})
	table.Set("x", types.Float, source.Span{})
	var buf bytes.Buffer
	if err := FormatSymbols(&buf, table); err != nil {
		t.Fatal(err)
	}
	want := "NAME  TYPE    BINDINGS\nx     float   2\ny     string  1\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}
