package symbols

import (
	"maps"
	"slices"

	"py2cpp/internal/source"
	"py2cpp/internal/types"
)

// Table maps variable names to their most recently inferred type. One table
// belongs to exactly one checker run.
type Table struct {
	entries []Symbol
	index   map[string]int // имя -> индекс в entries
}

// NewTable builds an empty table with room for hint symbols.
func NewTable(hint int) *Table {
	return &Table{
		entries: make([]Symbol, 0, hint),
		index:   make(map[string]int, hint),
	}
}

// Set binds name to ty at span; the last assignment wins.
func (t *Table) Set(name string, ty types.Type, span source.Span) {
	if i, ok := t.index[name]; ok {
		sym := &t.entries[i]
		sym.Type = ty
		sym.Span = span
		sym.Bindings++
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Symbol{Name: name, Type: ty, Decl: span, Span: span, Bindings: 1})
}

// Lookup returns the symbol bound to name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return t.entries[i], true
}

// TypeOf returns the stored type of name, or Unknown.
func (t *Table) TypeOf(name string) (types.Type, bool) {
	sym, ok := t.Lookup(name)
	return sym.Type, ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Symbols returns a copy of the entries in order of first binding.
func (t *Table) Symbols() []Symbol {
	return slices.Clone(t.entries)
}

// Snapshot returns a name -> type copy of the table.
func (t *Table) Snapshot() map[string]types.Type {
	out := make(map[string]types.Type, len(t.entries))
	for _, sym := range t.entries {
		out[sym.Name] = sym.Type
	}
	return out
}

// Equal reports whether both tables bind the same names to the same types.
func (t *Table) Equal(other *Table) bool {
	return maps.Equal(t.Snapshot(), other.Snapshot())
}
