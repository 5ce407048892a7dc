package parser

import (
	"fmt"

	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/token"
)

// parseTop разбирает выражение верхнего уровня: с включённым
// Options.Comparisons это comparison, иначе expression.
func (p *Parser) parseTop() (ast.NodeID, bool) {
	if p.opts.Comparisons {
		return p.parseBinary(precComparison)
	}
	return p.parseBinary(precAdditive)
}

// parseBinary: precedence climbing над уровнями op_table.
// Повторное применение оператора делает построенное поддерево левым
// ребёнком нового узла, отсюда левая ассоциативность.
func (p *Parser) parseBinary(minPrec int) (ast.NodeID, bool) {
	var left ast.NodeID
	var ok bool
	if minPrec == precMultiplicative {
		left, ok = p.parseFactor()
	} else {
		left, ok = p.parseBinary(minPrec + 1)
	}
	if !ok {
		return ast.NoNodeID, false
	}

	for {
		opTok := p.peek()
		op, prec, isOp := binaryOp(opTok)
		if !isOp || prec != minPrec {
			return left, true
		}
		p.advance()

		var right ast.NodeID
		if minPrec == precMultiplicative {
			right, ok = p.parseFactor()
		} else {
			right, ok = p.parseBinary(minPrec + 1)
		}
		if !ok {
			return ast.NoNodeID, false
		}
		sp := p.arenas.Nodes.Get(left).Span.Cover(p.arenas.Nodes.Get(right).Span)
		left = p.arenas.NewBinary(op, left, right, sp, posOf(opTok))
	}
}

// parseFactor: INT | FLOAT | STRING | IDENT | '(' expr ')'
func (p *Parser) parseFactor() (ast.NodeID, bool) {
	tok := p.peek()
	switch {
	case p.eof():
		p.err(diag.SynExpectExpression, "expected expression, reached end of input")
		return ast.NoNodeID, false
	case tok.IsLiteral():
		p.advance()
		return p.arenas.NewLiteral(tok.Text, tok.Span, posOf(tok)), true
	case tok.Kind == token.Ident:
		p.advance()
		return p.arenas.NewIdent(tok.Text, tok.Span, posOf(tok)), true
	case tok.IsDelim("("):
		open := p.advance()
		inner, ok := p.parseTop()
		if !ok {
			return ast.NoNodeID, false
		}
		if _, ok := p.expectClose(open); !ok {
			return ast.NoNodeID, false
		}
		return inner, true
	default:
		p.err(diag.SynExpectExpression, fmt.Sprintf("expected expression, got %s", p.describe()))
		return ast.NoNodeID, false
	}
}

// expectClose требует ')' для открывающей скобки open.
func (p *Parser) expectClose(open token.Token) (token.Token, bool) {
	if p.peek().IsDelim(")") {
		return p.advance(), true
	}
	p.reportUnclosed(open, fmt.Sprintf("expected ')' to close '(' at %d:%d, got %s", open.Line, open.Col, p.describe()))
	return token.Token{}, false
}

func (p *Parser) reportUnclosed(open token.Token, msg string) {
	at := p.diagSpan()
	insert := source.Span{File: at.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	p.emit(diag.ReportError(p.opts.Reporter, diag.SynUnclosedParen, at, msg).
		WithNote(open.Span, "'(' opened here").
		WithFix("insert ')'", diag.FixEdit{Span: insert, NewText: ")"}))
}
