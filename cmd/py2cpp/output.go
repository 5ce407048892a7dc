package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"py2cpp/internal/diag"
	"py2cpp/internal/diagfmt"
	"py2cpp/internal/driver"
	"py2cpp/internal/trace"
)

func readColorFlag(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return f != nil && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func readQuiet(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}

// diagPrinter renders unit diagnostics to stderr in the format chosen by
// --diagnostics.
type diagPrinter struct {
	w      io.Writer
	format string
	color  bool
	quiet  bool
	max    int
}

func newDiagPrinter(cmd *cobra.Command) (*diagPrinter, error) {
	format, err := cmd.Root().PersistentFlags().GetString("diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "plain":
	default:
		return nil, fmt.Errorf("unknown diagnostics format: %s", format)
	}
	color, err := readColorFlag(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return nil, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return &diagPrinter{w: cmd.ErrOrStderr(), format: format, color: color, quiet: quiet, max: maxDiagnostics}, nil
}

// unit prints everything the unit reported. --quiet keeps errors only.
func (p *diagPrinter) unit(u *driver.Unit) error {
	bag := u.Diagnostics()
	if p.quiet {
		bag = errorsOnly(bag)
	}
	if bag.Len() == 0 {
		return nil
	}
	switch p.format {
	case "json":
		return diagfmt.JSON(p.w, bag, u.FileSet, diagfmt.JSONOpts{Max: p.max, IncludeNotes: true, IncludeFixes: true})
	case "short":
		diagfmt.Short(p.w, bag, u.FileSet, diagfmt.PathModeAuto)
	case "plain":
		// одна строка на диагностику, стабильный порядок
		_, err := fmt.Fprintln(p.w, diag.FormatGoldenDiagnostics(bag.Items(), u.FileSet, false))
		return err
	default:
		diagfmt.Pretty(p.w, bag, u.FileSet, diagfmt.PrettyOpts{Color: p.color, ShowNotes: true, ShowFixes: true})
	}
	return nil
}

func errorsOnly(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity.Blocks() {
			out.Add(d)
		}
	}
	return out
}

// compileOne runs the pipeline on a single file up to stage and prints its
// diagnostics. A unit with errors comes back together with errReported.
func compileOne(cmd *cobra.Command, path string, opts driver.Options) (*driver.Unit, error) {
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.BeginCtx(cmd.Context(), trace.ScopeDriver, cmd.Name())
	span.WithExtra("path", path)
	unit, err := driver.CompileFile(ctx, path, opts)
	span.End(opts.Stage.String())
	if err != nil {
		return nil, err
	}
	if err := printer.unit(unit); err != nil {
		return unit, err
	}
	if unit.HasErrors() {
		return unit, errReported
	}
	return unit, nil
}
