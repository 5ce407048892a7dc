package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"py2cpp/internal/diag"
	"py2cpp/internal/source"
)

type palette struct {
	err, warn, info, note, bold, dim *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgCyan, color.Bold),
		note: mk(color.FgBlue),
		bold: mk(color.Bold),
		dim:  mk(color.Faint),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   N | source line
//	     | ^~~~
//
// затем notes и fixes, если они включены.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		pos := fs.Position(d.Primary)
		fmt.Fprintf(w, "%s: %s %s\n",
			pal.bold.Sprintf("%s:%d:%d", displayPath(fs, d.Primary.File, opts.PathMode), pos.Line, pos.Col),
			pal.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, pal.severity(d.Severity), pal)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				npos := fs.Position(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
					displayPath(fs, n.Span.File, opts.PathMode), npos.Line, npos.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
			}
		}
	}
}

// writeSnippet prints the primary line and an underline aligned by display width.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, accent *color.Color, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && start.Line > 1 {
		return
	}
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	pad := runewidth.StringWidth(strings.Map(tabToSpace, line[:from]))
	width := max(runewidth.StringWidth(line[from:to]), 1)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", pal.dim.Sprint(gutter), strings.ReplaceAll(line, "\t", " "))
	fmt.Fprintf(w, "%s%s%s\n", pal.dim.Sprint("     | "), strings.Repeat(" ", pad),
		accent.Sprint("^"+strings.Repeat("~", width-1)))
}

func tabToSpace(r rune) rune {
	if r == '\t' {
		return ' '
	}
	return r
}
