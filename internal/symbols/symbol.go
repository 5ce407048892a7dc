package symbols

import (
	"py2cpp/internal/source"
	"py2cpp/internal/types"
)

// Symbol is one variable binding. Type and Span track the latest
// assignment; Decl is where the name was first bound.
type Symbol struct {
	Name     string
	Type     types.Type
	Decl     source.Span
	Span     source.Span
	Bindings int // сколько раз переменной присваивали значение
}

// Builtin describes a predeclared callable.
type Builtin struct {
	Name string
	Type types.Type
	// AcceptsAny means the argument may be of any value type.
	AcceptsAny bool
}

var builtins = map[string]Builtin{
	"print": {Name: "print", Type: types.Function, AcceptsAny: true},
}

// LookupBuiltin reports whether name is a predeclared callable.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}
