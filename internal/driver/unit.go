package driver

import (
	"path/filepath"
	"strings"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/observ"
	"py2cpp/internal/sema"
	"py2cpp/internal/source"
	"py2cpp/internal/token"
)

// Unit is everything one compilation unit produced. Fields of stages that
// did not run stay zero.
type Unit struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File

	Tokens  []token.Token
	Builder *ast.Builder
	Program ast.NodeID
	Sema    *sema.Result
	// Output is the generated C++ translation unit.
	Output string

	// Диагностики разложены по стадиям: следующая стадия не запускается,
	// если в текущей есть ошибки. Генерация C++ требует пустого Semantic.
	Lexical  *diag.Bag
	Syntax   *diag.Bag
	Semantic *diag.Bag
	// Advisory holds warnings that never block emission.
	Advisory  *diag.Bag
	Telemetry *diag.Bag

	// Reached is the last stage that ran to completion.
	Reached Stage
	Cached  bool
	Timer   *observ.Timer
	Summary Summary
}

// Summary is what the build command reports after a unit compiles.
type Summary struct {
	Tokens int `msgpack:"tokens"`
	Nodes  int `msgpack:"nodes"`
}

func newUnit(path string, fs *source.FileSet, file *source.File, maxDiagnostics int) *Unit {
	return &Unit{
		Path:      path,
		FileSet:   fs,
		File:      file,
		Lexical:   diag.NewBag(maxDiagnostics),
		Syntax:    diag.NewBag(maxDiagnostics),
		Semantic:  diag.NewBag(maxDiagnostics),
		Advisory:  diag.NewBag(maxDiagnostics),
		Telemetry: diag.NewBag(0),
		Timer:     observ.NewTimer(),
	}
}

// HasErrors reports whether any stage produced an error.
func (u *Unit) HasErrors() bool {
	if u == nil {
		return false
	}
	return u.Lexical.HasErrors() || u.Syntax.HasErrors() || u.Semantic.HasErrors()
}

// Diagnostics merges the per-stage bags in pipeline order into one sorted bag.
func (u *Unit) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	if u == nil {
		return out
	}
	for _, bag := range []*diag.Bag{u.Lexical, u.Syntax, u.Semantic, u.Advisory, u.Telemetry} {
		for _, d := range bag.Items() {
			out.Add(d)
		}
	}
	out.Sort()
	return out
}

// OutputName returns "<base>.cpp" for the input path, placed in outDir.
func OutputName(path, outDir string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".cpp"
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, base)
}
