package lexer

import (
	"py2cpp/internal/diag"
	"py2cpp/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// KeepIgnorable makes Next also return comments, docstrings, newlines and
	// whitespace. Used by the token listing; the parser never sets it.
	KeepIgnorable bool
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
