package token

// keywords lists the reserved words recognized by the lexer. The parser has
// no productions for them; they exist so that such words never become identifiers.
var keywords = map[string]struct{}{
	"class":  {},
	"def":    {},
	"return": {},
	"if":     {},
	"else":   {},
	"while":  {},
	"for":    {},
	"None":   {},
	"True":   {},
	"False":  {},
}

var logicalOps = map[string]struct{}{
	"and": {},
	"or":  {},
	"not": {},
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsLogicalOp reports whether s is and/or/not.
func IsLogicalOp(s string) bool {
	_, ok := logicalOps[s]
	return ok
}

// BuiltinPrint is the name of the only built-in callable.
const BuiltinPrint = "print"
