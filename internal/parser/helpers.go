package parser

import (
	"fmt"

	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/token"
)

func (p *Parser) eof() bool {
	return p.pos >= len(p.toks)
}

// peek возвращает текущий токен; за концом: нулевой токен (Kind Invalid).
func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{}
	}
	return p.toks[p.pos+n]
}

// advance: съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.eof() {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// skip drops one token during recovery.
func (p *Parser) skip() {
	if !p.eof() {
		p.advance()
	}
}

// diagSpan: у конца ввода указываем сразу за последним съеденным токеном.
func (p *Parser) diagSpan() source.Span {
	if p.eof() {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.peek().Span
}

// describe renders the current token for messages.
func (p *Parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	tok := p.peek()
	return fmt.Sprintf("'%s'", tok.Text)
}

// expect: consume-or-error: продвигается только при точном совпадении.
func (p *Parser) expect(kind token.Kind, text string, code diag.Code, msg string) (token.Token, bool) {
	if p.peek().Is(kind, text) {
		return p.advance(), true
	}
	p.err(code, fmt.Sprintf("%s, got %s", msg, p.describe()))
	return token.Token{}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emit(diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg))
}

// emit отправляет собранную диагностику с учётом лимита MaxErrors.
func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if b.Diagnostic().Severity == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	b.Emit()
	return true
}
