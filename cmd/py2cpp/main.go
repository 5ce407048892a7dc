package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"py2cpp/internal/prof"
	"py2cpp/internal/version"
)

// errReported means the diagnostics have already been printed; main only
// has to set the exit status.
var errReported = errors.New("compilation failed")

// newRootCmd собирает дерево команд заново, чтобы тесты не делили флаги.
// The returned finish func flushes the tracer; cobra skips post-run hooks
// when a command fails, so callers run it after Execute.
func newRootCmd() (*cobra.Command, func()) {
	var cleanup func()
	var profile *prof.Session
	root := &cobra.Command{
		Use:           "py2cpp",
		Short:         "Python subset to C++ compiler",
		Long:          `py2cpp translates a small Python subset (assignments, print and arithmetic) into C++`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanup = c
			profile, err = startProfiling(cmd)
			return err
		},
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per stage (0 = unlimited)")
	root.PersistentFlags().String("diagnostics", "pretty", "diagnostics format (pretty|short|plain|json)")
	root.PersistentFlags().String("config", "", "path to py2cpp.toml (default: search upwards from the working directory)")

	root.PersistentFlags().String("trace", "", "write a trace to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")

	root.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	root.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	finish := func() {
		if err := profile.Stop(); err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "profile: %v\n", err)
		}
		profile = nil
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}
