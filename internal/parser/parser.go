package parser

import (
	"context"
	"fmt"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/token"
	"py2cpp/internal/trace"
)

type Options struct {
	// File is used for spans when the token stream is empty.
	File          source.FileID
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Comparisons adds a lowest-precedence comparison tier
	// (expression (COMPAREOP expression)*) to the grammar.
	Comparisons bool
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program ast.NodeID
	Errors  uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	tracer   trace.Tracer
	span     uint64
}

// ParseFile builds a Program node from a token stream that holds no
// ignorable kinds. It never panics; every failure becomes a diagnostic.
func ParseFile(ctx context.Context, toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:     toks,
		arenas:   arenas,
		opts:     opts,
		lastSpan: source.Span{File: opts.File},
		tracer:   trace.FromContext(ctx),
		span:     trace.CurrentSpan(ctx),
	}
	prog := p.parseProgram()
	return Result{Program: prog, Errors: p.opts.CurrentErrors}
}

// parseProgram: основной цикл: пока есть токены, разбираем инструкцию.
// При ошибке пропускаем один токен, что гарантирует завершение.
func (p *Parser) parseProgram() ast.NodeID {
	prog := p.arenas.NewProgram(source.Span{File: p.opts.File})
	for !p.eof() {
		stmt, ok := p.parseStmt()
		if !ok {
			p.skip()
			continue
		}
		p.arenas.PushStmt(prog, stmt)
		if p.tracer.Enabled() {
			trace.Point(p.tracer, trace.ScopeNode, "stmt", p.arenas.Nodes.Get(stmt).Kind.String(), p.span)
		}
	}
	return prog
}

// parseStmt выбирает распознаватель по первому токену.
func (p *Parser) parseStmt() (ast.NodeID, bool) {
	tok := p.peek()
	switch {
	case tok.IsPrint():
		return p.parsePrint()
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.AssignOp:
		return p.parseAssign()
	case tok.StartsExpr():
		return p.parseExprStmt()
	default:
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected token %s '%s'", tok.Kind, tok.Text))
		return ast.NoNodeID, false
	}
}
