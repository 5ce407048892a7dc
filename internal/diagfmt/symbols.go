package diagfmt

import (
	"fmt"
	"io"
	"text/tabwriter"

	"py2cpp/internal/symbols"
)

// FormatSymbols prints the symbol table in order of first binding.
func FormatSymbols(w io.Writer, table *symbols.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tBINDINGS")
	for _, sym := range table.Symbols() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", sym.Name, sym.Type, sym.Bindings)
	}
	return tw.Flush()
}
