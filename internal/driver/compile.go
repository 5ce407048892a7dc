package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"

	"py2cpp/internal/ast"
	"py2cpp/internal/codegen"
	"py2cpp/internal/diag"
	"py2cpp/internal/lexer"
	"py2cpp/internal/observ"
	"py2cpp/internal/parser"
	"py2cpp/internal/pyref"
	"py2cpp/internal/sema"
	"py2cpp/internal/source"
	"py2cpp/internal/trace"
)

// CompileFile loads path and runs the pipeline up to opts.Stage. The error
// is reserved for I/O failures; source problems end up in the unit's bags.
func CompileFile(ctx context.Context, path string, opts Options) (*Unit, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	idx := timer.Begin(observ.PhaseLoad)
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)
	timer.End(idx, fmt.Sprintf("%d bytes", len(file.Content)))
	return compileUnit(ctx, fs, file, opts, timer), nil
}

// CompileSource runs the pipeline over an in-memory unit named name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Unit {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compileUnit(ctx, fs, fs.Get(id), opts, observ.NewTimer())
}

func compileUnit(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, timer *observ.Timer) *Unit {
	if opts.Stage == 0 {
		opts.Stage = StageEmit
	}
	u := newUnit(file.Path, fs, file, opts.MaxDiagnostics)
	u.Timer = timer

	ctx, span := trace.BeginCtx(ctx, trace.ScopeModule, "unit")
	span.WithExtra("path", file.Path)
	defer func() {
		u.appendTimings(opts)
		span.End(u.Reached.String())
	}()

	if opts.Stage == StageEmit && u.restore(&opts) {
		return u
	}

	u.pass(ctx, &opts, observ.PhaseLex, func(context.Context) string { return u.lex(&opts) })
	u.Reached = StageTokenize
	if opts.Stage == StageTokenize || u.Lexical.HasErrors() {
		return u
	}

	u.pass(ctx, &opts, observ.PhaseParse, func(pctx context.Context) string { return u.parse(pctx, &opts) })
	u.Reached = StageParse
	if opts.Stage == StageParse || u.Syntax.HasErrors() {
		return u
	}

	u.pass(ctx, &opts, observ.PhaseSema, func(context.Context) string { return u.check() })
	if opts.PythonReference {
		u.pass(ctx, &opts, observ.PhasePyRef, func(context.Context) string {
			n := pyref.CrossCheck(u.Builder, u.Program, u.File, diag.BagReporter{Bag: u.Advisory})
			return fmt.Sprintf("%d mismatches", n)
		})
	}
	u.Reached = StageCheck
	if opts.Stage == StageCheck || u.Semantic.Len() > 0 {
		return u
	}

	u.pass(ctx, &opts, observ.PhaseEmit, func(context.Context) string { return u.emit(&opts) })
	if u.Semantic.Len() > 0 {
		return u
	}
	u.Reached = StageEmit
	u.store(&opts)
	return u
}

// pass runs one phase under a trace span, the unit timer and the phase observer.
func (u *Unit) pass(ctx context.Context, opts *Options, phase string, fn func(context.Context) string) {
	pctx, span := trace.BeginCtx(ctx, trace.ScopePass, phase)
	opts.observe(u.Path, phase, PhaseStart, 0)
	start := time.Now()
	idx := u.Timer.Begin(phase)
	note := fn(pctx)
	u.Timer.End(idx, note)
	span.End(note)
	opts.observe(u.Path, phase, PhaseEnd, time.Since(start))
}

func (u *Unit) lex(opts *Options) string {
	lx := lexer.New(u.File, lexer.Options{
		Reporter:      diag.BagReporter{Bag: u.Lexical},
		KeepIgnorable: opts.KeepTrivia && opts.Stage == StageTokenize,
	})
	u.Tokens = lx.Tokenize()
	u.Summary.Tokens = len(u.Tokens)
	if lx.Stopped() {
		return fmt.Sprintf("%d tokens, stopped", len(u.Tokens))
	}
	return fmt.Sprintf("%d tokens", len(u.Tokens))
}

func (u *Unit) parse(ctx context.Context, opts *Options) string {
	hint, err := safecast.Conv[uint](len(u.Tokens))
	if err != nil {
		hint = 0
	}
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	u.Builder = ast.NewBuilder(ast.Hints{Nodes: hint}, nil)
	res := parser.ParseFile(ctx, u.Tokens, u.Builder, parser.Options{
		File:        u.File.ID,
		MaxErrors:   maxErrors,
		Reporter:    diag.NewDedupReporter(diag.BagReporter{Bag: u.Syntax}),
		Comparisons: opts.Comparisons,
	})
	u.Program = res.Program
	u.Summary.Nodes = u.Builder.CountNodes()
	return fmt.Sprintf("%d nodes", u.Summary.Nodes)
}

func (u *Unit) check() string {
	u.Sema = sema.Check(u.Builder, u.Program, sema.Options{
		Reporter:    diag.BagReporter{Bag: u.Semantic},
		Advisory:    diag.BagReporter{Bag: u.Advisory},
		SymbolsHint: u.Summary.Nodes / 4,
	})
	return fmt.Sprintf("%d symbols, %d errors", u.Sema.Symbols.Len(), u.Sema.Errors)
}

func (u *Unit) emit(opts *Options) string {
	out, err := codegen.Emit(u.Builder, u.Program, u.Sema, codegen.Options{Indent: opts.Indent})
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: u.Semantic}, diag.SemaError,
			source.Span{File: u.File.ID}, fmt.Sprintf("code generation failed: %v", err)).Emit()
		return "failed"
	}
	u.Output = out
	return fmt.Sprintf("%d bytes", len(out))
}
