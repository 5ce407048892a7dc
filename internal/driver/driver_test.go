package driver_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"py2cpp/internal/diag"
	"py2cpp/internal/driver"
	"py2cpp/internal/observ"
	"py2cpp/internal/token"
)

const helloOutput = "#include <iostream>\n#include <string>\n\nint main() {\n" +
	"    long long x = 5;\n" +
	"    std::cout << x << std::endl;\n" +
	"    return 0;\n}\n"

func compile(t *testing.T, src string, opts driver.Options) *driver.Unit {
	t.Helper()
	u := driver.CompileSource(context.Background(), "main.py", []byte(src), opts)
	if u == nil {
		t.Fatal("nil unit")
	}
	return u
}

func TestCompileSourceFullPipeline(t *testing.T) {
	u := compile(t, "x = 5\nprint(x)\n", driver.Options{})
	if u.HasErrors() || u.Diagnostics().Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", u.Diagnostics().Messages())
	}
	if u.Reached != driver.StageEmit {
		t.Fatalf("reached %s", u.Reached)
	}
	if u.Output != helloOutput {
		t.Fatalf("output:\n%s", u.Output)
	}
	if u.Summary != (driver.Summary{Tokens: 7, Nodes: 5}) {
		t.Fatalf("summary = %+v", u.Summary)
	}
	if ty, ok := u.Sema.Symbols.TypeOf("x"); !ok || ty.String() != "int" {
		t.Fatalf("x: %v %v", ty, ok)
	}
}

func TestStagesStopOnErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		reached driver.Stage
		bag     func(*driver.Unit) *diag.Bag
		message string
	}{
		{
			name:    "lexical",
			src:     "x = 1 $ 2",
			reached: driver.StageTokenize,
			bag:     func(u *driver.Unit) *diag.Bag { return u.Lexical },
			message: "unexpected character '$'",
		},
		{
			name:    "syntactic",
			src:     "print(",
			reached: driver.StageParse,
			bag:     func(u *driver.Unit) *diag.Bag { return u.Syntax },
			message: "')'",
		},
		{
			name:    "semantic",
			src:     "print(y)",
			reached: driver.StageCheck,
			bag:     func(u *driver.Unit) *diag.Bag { return u.Semantic },
			message: "undefined variable 'y'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := compile(t, tt.src, driver.Options{})
			if u.Reached != tt.reached {
				t.Fatalf("reached %s, want %s", u.Reached, tt.reached)
			}
			bag := tt.bag(u)
			if !bag.HasErrors() {
				t.Fatalf("no errors in stage bag; all: %v", u.Diagnostics().Messages())
			}
			if msgs := bag.Messages(); !strings.Contains(strings.Join(msgs, "\n"), tt.message) {
				t.Fatalf("messages %v do not mention %q", msgs, tt.message)
			}
			if u.Output != "" {
				t.Fatalf("output must stay empty on errors")
			}
			if !u.HasErrors() {
				t.Fatalf("HasErrors = false")
			}
		})
	}
}

func TestLaterStagesSkipped(t *testing.T) {
	u := compile(t, "x = 1 $ 2", driver.Options{})
	if u.Builder != nil || u.Sema != nil {
		t.Fatalf("parser or checker ran after lexical errors")
	}
	u = compile(t, "print(", driver.Options{})
	if u.Sema != nil {
		t.Fatalf("checker ran after syntax errors")
	}
}

func TestStageOption(t *testing.T) {
	u := compile(t, "x = 5", driver.Options{Stage: driver.StageParse})
	if u.Builder == nil || u.Sema != nil || u.Output != "" {
		t.Fatalf("parse stage: builder=%v sema=%v output=%q", u.Builder != nil, u.Sema != nil, u.Output)
	}
	u = compile(t, "x = 5", driver.Options{Stage: driver.StageCheck})
	if u.Sema == nil || u.Output != "" {
		t.Fatalf("check stage must stop before emission")
	}
}

func TestKeepTrivia(t *testing.T) {
	src := "x = 1 # note\n"
	u := compile(t, src, driver.Options{Stage: driver.StageTokenize, KeepTrivia: true})
	if !slices.ContainsFunc(u.Tokens, func(tok token.Token) bool { return tok.Kind == token.Comment }) {
		t.Fatalf("comment dropped: %v", u.Tokens)
	}
	u = compile(t, src, driver.Options{KeepTrivia: true})
	if len(u.Tokens) != 3 {
		t.Fatalf("trivia must not reach the parser: %v", u.Tokens)
	}
}

func TestComparisonsOption(t *testing.T) {
	if u := compile(t, "b = 1 < 2", driver.Options{}); !u.Syntax.HasErrors() {
		t.Fatalf("comparison accepted without the option")
	}
	u := compile(t, "b = 1 < 2", driver.Options{Comparisons: true})
	if u.HasErrors() {
		t.Fatalf("diagnostics: %v", u.Diagnostics().Messages())
	}
	if !strings.Contains(u.Output, "bool b = (1 < 2);") {
		t.Fatalf("output:\n%s", u.Output)
	}
}

func TestIndentOption(t *testing.T) {
	u := compile(t, "x = 5", driver.Options{Indent: "\t"})
	if !strings.Contains(u.Output, "\tlong long x = 5;\n") {
		t.Fatalf("output:\n%s", u.Output)
	}
}

func TestTimingsDiagnostic(t *testing.T) {
	u := compile(t, "x = 5", driver.Options{EnableTimings: true})
	items := u.Telemetry.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("telemetry = %+v", items)
	}
	if u.HasErrors() {
		t.Fatalf("timings must not count as errors")
	}
	var payload struct {
		Kind   string               `json:"kind"`
		Phases []observ.PhaseReport `json:"phases"`
	}
	if err := json.Unmarshal([]byte(items[0].Notes[0].Msg), &payload); err != nil {
		t.Fatalf("note is not JSON: %v", err)
	}
	var names []string
	for _, p := range payload.Phases {
		names = append(names, p.Name)
	}
	want := []string{observ.PhaseLex, observ.PhaseParse, observ.PhaseSema, observ.PhaseEmit}
	if payload.Kind != "unit" || !slices.Equal(names, want) {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestPhaseObserver(t *testing.T) {
	var mu sync.Mutex
	var started []string
	opts := driver.Options{PhaseObserver: func(ev driver.PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == driver.PhaseStart {
			started = append(started, ev.Name)
		}
	}}
	compile(t, "print(1)", opts)
	want := []string{observ.PhaseLex, observ.PhaseParse, observ.PhaseSema, observ.PhaseEmit}
	if !slices.Equal(started, want) {
		t.Fatalf("phases = %v", started)
	}
}

func TestPythonReferenceWarnings(t *testing.T) {
	u := compile(t, "x = 5\nprint(x)", driver.Options{PythonReference: true})
	if u.HasErrors() || u.Semantic.Len() != 0 || u.Advisory.Len() != 0 {
		t.Fatalf("diagnostics: %v", u.Diagnostics().Messages())
	}
}

func TestAdvisoryWarningsDoNotBlockEmission(t *testing.T) {
	u := compile(t, "x = print\nprint(x)", driver.Options{})
	if u.Semantic.Len() != 0 {
		t.Fatalf("semantic list must be empty: %v", u.Semantic.Messages())
	}
	if msgs := u.Advisory.Messages(); len(msgs) != 1 || !strings.Contains(msgs[0], "built-in function") {
		t.Fatalf("advisory = %v", msgs)
	}
	if u.Reached != driver.StageEmit || u.Output == "" {
		t.Fatalf("reached %s, output %q", u.Reached, u.Output)
	}
	if u.Diagnostics().Len() != 1 {
		t.Fatalf("merged diagnostics = %v", u.Diagnostics().Messages())
	}
}

func TestNonEmptySemanticListBlocksEmission(t *testing.T) {
	u := compile(t, "x = 'a' + 1", driver.Options{})
	if u.Semantic.Len() == 0 {
		t.Fatalf("expected a semantic diagnostic")
	}
	if u.Reached != driver.StageCheck || u.Output != "" {
		t.Fatalf("reached %s, output %q", u.Reached, u.Output)
	}
}

func TestCompileFileMissing(t *testing.T) {
	_, err := driver.CompileFile(context.Background(), filepath.Join(t.TempDir(), "absent.py"), driver.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ path, dir, want string }{
		{"prog.py", "", "prog.cpp"},
		{"src/prog.py", "build", filepath.Join("build", "prog.cpp")},
		{"noext", "out", filepath.Join("out", "noext.cpp")},
		{"a.b.py", "", "a.b.cpp"},
	}
	for _, tt := range tests {
		if got := driver.OutputName(tt.path, tt.dir); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestCompileFileDeclaredEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.py")
	if err := os.WriteFile(path, []byte("# -*- coding: latin-1 -*-\ns = 'caf\xe9'\nprint(s)\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	u, err := driver.CompileFile(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if u.HasErrors() {
		t.Fatalf("diagnostics: %v", u.Diagnostics().Messages())
	}
	if !strings.Contains(u.Output, "café") {
		t.Fatalf("output lost the decoded literal:\n%s", u.Output)
	}
}

func TestOversizedIntLiteralBlocksOutput(t *testing.T) {
	u := compile(t, "x = 99999999999999999999\nprint(x)", driver.Options{})
	msgs := u.Semantic.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "does not fit in long long") {
		t.Fatalf("semantic = %v", msgs)
	}
	if u.Output != "" || u.Reached == driver.StageEmit {
		t.Fatalf("reached %s, output %q", u.Reached, u.Output)
	}
}
