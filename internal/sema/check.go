package sema

import (
	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/symbols"
	"py2cpp/internal/types"
)

// Options configure a semantic pass over a program.
type Options struct {
	Reporter diag.Reporter
	// Advisory receives warnings that stay out of the semantic list.
	// A nil Advisory drops them.
	Advisory diag.Reporter
	// SymbolsHint preallocates the symbol table.
	SymbolsHint int
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Symbols   *symbols.Table
	NodeTypes map[ast.NodeID]types.Type
	// Errors counts error diagnostics reported during the run.
	Errors int
}

// TypeOf returns the inferred type of a visited node, Unknown otherwise.
func (r *Result) TypeOf(id ast.NodeID) types.Type {
	if r == nil {
		return types.Unknown
	}
	return r.NodeTypes[id]
}

// Check walks the program, records the type of every visited node and
// reports ill-typed operations. Each call starts from a fresh symbol table,
// so checking the same tree twice yields identical results.
func Check(builder *ast.Builder, program ast.NodeID, opts Options) *Result {
	res := &Result{
		Symbols:   symbols.NewTable(opts.SymbolsHint),
		NodeTypes: make(map[ast.NodeID]types.Type),
	}
	if builder == nil || !program.IsValid() {
		return res
	}

	checker := typeChecker{
		builder:  builder,
		reporter: opts.Reporter,
		advisory: opts.Advisory,
		result:   res,
	}
	checker.run(program)
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	reporter diag.Reporter
	advisory diag.Reporter
	result   *Result
}

func (tc *typeChecker) run(program ast.NodeID) {
	if tc.builder.Nodes.Get(program) == nil {
		return
	}
	tc.visit(program)
}
