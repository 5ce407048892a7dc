package parser

import (
	"py2cpp/internal/ast"
	"py2cpp/internal/diag"
	"py2cpp/internal/token"
)

func posOf(tok token.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Col: tok.Col}
}

// parsePrint: 'print' '(' expr ')'
func (p *Parser) parsePrint() (ast.NodeID, bool) {
	kw := p.advance()
	open, ok := p.expect(token.Delim, "(", diag.SynExpectDelimiter, "expected '(' after 'print'")
	if !ok {
		return ast.NoNodeID, false
	}
	if p.eof() {
		p.reportUnclosed(open, "expected ')' to close 'print(', reached end of input")
		return ast.NoNodeID, false
	}
	arg, ok := p.parseTop()
	if !ok {
		return ast.NoNodeID, false
	}
	closeTok, ok := p.expectClose(open)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.arenas.NewPrint(arg, kw.Span.Cover(closeTok.Span), posOf(kw)), true
}

// parseAssign: IDENT '=' expr
func (p *Parser) parseAssign() (ast.NodeID, bool) {
	name := p.advance()
	if _, ok := p.expect(token.AssignOp, "=", diag.SynExpectAssign, "expected '=' in assignment"); !ok {
		return ast.NoNodeID, false
	}
	value, ok := p.parseTop()
	if !ok {
		return ast.NoNodeID, false
	}
	sp := name.Span.Cover(p.arenas.Nodes.Get(value).Span)
	return p.arenas.NewAssign(name.Text, value, sp, posOf(name)), true
}

func (p *Parser) parseExprStmt() (ast.NodeID, bool) {
	first := p.peek()
	x, ok := p.parseTop()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.arenas.NewExprStmt(x, p.arenas.Nodes.Get(x).Span, posOf(first)), true
}
