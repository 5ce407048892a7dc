package token

import (
	"fmt"

	"py2cpp/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based
	Col  uint32 // 1-based, in characters
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Int, Float, String:
		return true
	default:
		return false
	}
}

// Is reports whether the token has kind k and exactly the text text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// IsDelim reports whether the token is the delimiter d.
func (t Token) IsDelim(d string) bool {
	return t.Is(Delim, d)
}

// IsPrint reports whether the token names the built-in print.
func (t Token) IsPrint() bool {
	return t.Is(Ident, BuiltinPrint)
}

// StartsExpr reports whether an expression may begin with this token.
func (t Token) StartsExpr() bool {
	return t.IsLiteral() || t.Kind == Ident || t.IsDelim("(")
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind, t.Text, t.Line, t.Col)
}
