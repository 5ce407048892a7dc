package lexer

import (
	"bytes"
	"regexp"
	"unicode"
	"unicode/utf8"

	"py2cpp/internal/token"
)

// rule is one entry of the classification table. Patterns are anchored at
// the scan offset with \A. wordStart replaces a leading \b: RE2 cannot see
// the byte before the slice it matches, so the boundary is checked by hand
// against the previous character of the file. wordStart rules are matched
// against the word view of the content (see wordView) so that their
// trailing \b treats non-ASCII letters as word characters.
type rule struct {
	kind      token.Kind
	re        *regexp.Regexp
	wordStart bool
}

// rules is tried in order; the first match wins. The order is a contract:
// '==' lexes as two '=' because AssignOp precedes CompareOp, '+=' lexes as
// '+' then '=' because ArithOp precedes AssignOp.
var rules = []rule{
	{kind: token.Comment, re: regexp.MustCompile(`\A#.*`)},
	{kind: token.Docstring, re: regexp.MustCompile(`\A(?:"""[\s\S]*?"""|'''[\s\S]*?''')`)},
	{kind: token.Newline, re: regexp.MustCompile(`\A\n`)},
	{kind: token.Keyword, re: regexp.MustCompile(`\A(?:class|def|return|if|else|while|for|None|True|False)\b`), wordStart: true},
	{kind: token.LogicalOp, re: regexp.MustCompile(`\A(?:and|or|not)\b`), wordStart: true},
	{kind: token.String, re: regexp.MustCompile(`\A(?:"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*')`)},
	{kind: token.Float, re: regexp.MustCompile(`\A(?:(?:\d+\.\d*|\.\d+)(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+)\b`), wordStart: true},
	{kind: token.Int, re: regexp.MustCompile(`\A\d+\b`), wordStart: true},
	{kind: token.ArithOp, re: regexp.MustCompile(`\A(?:\*\*|\*|/|\+|-|%)`)},
	{kind: token.AssignOp, re: regexp.MustCompile(`\A(?:\+=|-=|\*=|/=|%=|=)`)},
	{kind: token.CompareOp, re: regexp.MustCompile(`\A(?:==|!=|<=|>=|<|>)`)},
	{kind: token.Delim, re: regexp.MustCompile(`\A[:;,()\[\]{}]`)},
	{kind: token.Ident, re: regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*`)},
	{kind: token.Whitespace, re: regexp.MustCompile(`\A[ \t]+`)},
	{kind: token.Error, re: regexp.MustCompile(`\A.`)},
}

// isWordRune is \w with Unicode semantics: letters, numbers and '_'.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// atWordBoundary reports whether \b would hold at the cursor.
func atWordBoundary(prev, cur rune, atStart bool) bool {
	before := !atStart && isWordRune(prev)
	return before != isWordRune(cur)
}

// wordView returns content with the bytes of every non-ASCII word character
// replaced by '_'. Offsets are unchanged, and RE2's ASCII \b over the view
// agrees with a Unicode \b over the content. Pure ASCII input is returned as is.
func wordView(content []byte) []byte {
	var view []byte
	for i := 0; i < len(content); {
		if content[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, n := utf8.DecodeRune(content[i:])
		if isWordRune(r) {
			if view == nil {
				view = bytes.Clone(content)
			}
			for j := i; j < i+n; j++ {
				view[j] = '_'
			}
		}
		i += n
	}
	if view == nil {
		return content
	}
	return view
}
