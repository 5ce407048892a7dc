package codegen

import "fmt"

var cppKeywords = map[string]struct{}{
	"alignas": {}, "alignof": {}, "asm": {}, "auto": {}, "bool": {}, "break": {},
	"case": {}, "catch": {}, "char": {}, "const": {}, "constexpr": {}, "continue": {},
	"default": {}, "delete": {}, "do": {}, "double": {}, "enum": {}, "explicit": {},
	"extern": {}, "float": {}, "friend": {}, "goto": {}, "inline": {}, "int": {},
	"long": {}, "mutable": {}, "namespace": {}, "new": {}, "noexcept": {}, "nullptr": {},
	"operator": {}, "private": {}, "protected": {}, "public": {}, "register": {},
	"short": {}, "signed": {}, "sizeof": {}, "static": {}, "struct": {}, "switch": {},
	"template": {}, "this": {}, "throw": {}, "try": {}, "typedef": {}, "typename": {},
	"union": {}, "unsigned": {}, "using": {}, "virtual": {}, "void": {}, "volatile": {},
	"std": {}, "main": {},
}

// declName returns the C++ name for the first binding of name.
func (e *Emitter) declName(name string) string {
	if _, kw := cppKeywords[name]; !kw {
		e.taken[name] = struct{}{}
		return name
	}
	cand := name + "_"
	for e.isTaken(cand) {
		cand += "_"
	}
	e.taken[cand] = struct{}{}
	return cand
}

// fresh returns an unused name_N for a re-binding with a new type.
func (e *Emitter) fresh(name string) string {
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s_%d", name, i)
		if !e.isTaken(cand) {
			e.taken[cand] = struct{}{}
			return cand
		}
	}
}

func (e *Emitter) isTaken(name string) bool {
	_, ok := e.taken[name]
	return ok
}
