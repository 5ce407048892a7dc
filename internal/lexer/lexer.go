package lexer

import (
	"fmt"
	"unicode/utf8"

	"py2cpp/internal/diag"
	"py2cpp/internal/source"
	"py2cpp/internal/token"
)

type Lexer struct {
	file    *source.File
	words   []byte // wordView(file.Content)
	cursor  Cursor
	opts    Options
	stopped bool // фатальная остановка: дальше ничего не выдаём
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		words:  wordView(file.Content),
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен. Игнорируемые виды пропускаются, если
// не включён KeepIgnorable. ok == false означает конец ввода или фатальную остановку.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	for !lx.stopped && !lx.cursor.EOF() {
		tok, ok = lx.scan()
		if !ok {
			lx.stopped = true
			return token.Token{}, false
		}
		if tok.Kind.Ignorable() && !lx.opts.KeepIgnorable {
			continue
		}
		return tok, true
	}
	return token.Token{}, false
}

// Tokenize drains the lexer and returns every significant token in order.
func (lx *Lexer) Tokenize() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Stopped reports whether scanning ended on a fatal stuck state.
func (lx *Lexer) Stopped() bool {
	return lx.stopped
}

// scan пробует правила по порядку и фиксирует первое совпадение.
func (lx *Lexer) scan() (token.Token, bool) {
	rest := lx.cursor.Rest()
	words := lx.words[lx.cursor.Off:lx.cursor.Limit]
	cur, _ := utf8.DecodeRune(rest)
	for i := range rules {
		r := &rules[i]
		subject := rest
		if r.wordStart {
			if !atWordBoundary(lx.cursor.Prev(), cur, lx.cursor.Off == 0) {
				continue
			}
			subject = words
		}
		loc := r.re.FindIndex(subject)
		if loc == nil {
			continue
		}
		if loc[1] == 0 {
			break
		}
		return lx.commit(r.kind, loc[1]), true
	}
	lx.report(diag.LexStuck, lx.cursor.Here(),
		fmt.Sprintf("cannot tokenize input at line %d, column %d", lx.cursor.Line, lx.cursor.Col))
	return token.Token{}, false
}

func (lx *Lexer) commit(kind token.Kind, n int) token.Token {
	mark := lx.cursor.Mark()
	line, col := lx.cursor.Line, lx.cursor.Col
	lx.cursor.Advance(n)
	sp := lx.cursor.SpanFrom(mark)
	tok := token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: line,
		Col:  col,
	}
	if kind == token.Error {
		lx.report(diag.LexUnexpectedChar, sp, fmt.Sprintf("unexpected character '%s'", tok.Text))
	}
	return tok
}
