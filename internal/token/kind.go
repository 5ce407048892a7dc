package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value and never produced by the lexer.
	Invalid Kind = iota
	// Comment is a '#' line comment.
	Comment
	// Docstring is a triple-quoted block.
	Docstring
	// Newline is a single line break.
	Newline
	// Keyword is a reserved word (class, def, return, if, else, while, for, None, True, False).
	Keyword
	// LogicalOp is one of and/or/not.
	LogicalOp
	// String is a single- or double-quoted string literal.
	String
	// Float is a float-shaped numeric literal.
	Float
	// Int is an integer-shaped numeric literal.
	Int
	// ArithOp is one of ** * / + - %.
	ArithOp
	// AssignOp is '=' or an augmented assignment operator.
	AssignOp
	// CompareOp is one of == != <= >= < >.
	CompareOp
	// Delim is a delimiter: : ; , ( ) [ ] { }
	Delim
	// Ident is an identifier.
	Ident
	// Whitespace is a run of spaces or tabs.
	Whitespace
	// Error is a single unrecognized character.
	Error
)

var kindNames = [...]string{
	Invalid:    "INVALID",
	Comment:    "COMMENT",
	Docstring:  "DOCSTRING",
	Newline:    "NEWLINE",
	Keyword:    "KEYWORD",
	LogicalOp:  "LOGICALOP",
	String:     "STRING",
	Float:      "FLOAT",
	Int:        "INT",
	ArithOp:    "ARITHOP",
	AssignOp:   "ASSIGNOP",
	CompareOp:  "COMPAREOP",
	Delim:      "DELIM",
	Ident:      "IDENT",
	Whitespace: "WHITESPACE",
	Error:      "ERROR",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Ignorable reports whether tokens of this kind are dropped from the stream.
func (k Kind) Ignorable() bool {
	switch k {
	case Comment, Docstring, Newline, Whitespace:
		return true
	default:
		return false
	}
}

// KindFromString returns the kind for a name produced by Kind.String.
func KindFromString(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name && Kind(i) != Invalid {
			return Kind(i), true
		}
	}
	return Invalid, false
}
