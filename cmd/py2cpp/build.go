package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"py2cpp/internal/buildpipeline"
	"py2cpp/internal/diagfmt"
	"py2cpp/internal/driver"
	"py2cpp/internal/trace"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] <file.py|dir>",
		Short: "Compile sources to C++",
		Long: `Build compiles a source file, or every .py file under a directory, to C++.
Each input produces <base>.cpp in the output directory; inputs found in
subdirectories keep their relative location.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
	cmd.Flags().String("out", "", "output directory (default from py2cpp.toml, then \"build\")")
	cmd.Flags().Int("jobs", 0, "parallel compilation jobs (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "ignore and do not update the compilation cache")
	cmd.Flags().Bool("stdout", false, "print the generated C++ instead of writing files")
	cmd.Flags().Bool("tokens", false, "print the token list of every compiled file")
	cmd.Flags().Bool("tree", false, "print the syntax tree of every compiled file")
	addLanguageFlags(cmd)
	return cmd
}

type buildFlags struct {
	out        string
	jobs       int
	ui         progressMode
	noCache    bool
	stdout     bool
	showTokens bool
	showTree   bool
}

func readBuildFlags(cmd *cobra.Command) (buildFlags, error) {
	var bf buildFlags
	var err error
	if bf.out, err = cmd.Flags().GetString("out"); err != nil {
		return bf, fmt.Errorf("failed to get out flag: %w", err)
	}
	if bf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return bf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if bf.jobs < 0 {
		return bf, fmt.Errorf("--jobs must be >= 0, got %d", bf.jobs)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return bf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if bf.ui, err = parseProgressMode(uiValue); err != nil {
		return bf, err
	}
	if bf.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return bf, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if bf.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return bf, fmt.Errorf("failed to get stdout flag: %w", err)
	}
	if bf.showTokens, err = cmd.Flags().GetBool("tokens"); err != nil {
		return bf, fmt.Errorf("failed to get tokens flag: %w", err)
	}
	if bf.showTree, err = cmd.Flags().GetBool("tree"); err != nil {
		return bf, fmt.Errorf("failed to get tree flag: %w", err)
	}
	return bf, nil
}

// collectInputs expands a build target: a directory yields every .py file
// under it, a file yields itself.
func collectInputs(target string) (files []string, baseDir string, err error) {
	st, err := os.Stat(target)
	if err != nil {
		return nil, "", fmt.Errorf("build target: %w", err)
	}
	if !st.IsDir() {
		return []string{target}, filepath.Dir(target), nil
	}
	files, err = driver.ListSources(target)
	if err != nil {
		return nil, "", err
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no %s files under %s", driver.SourceExt, target)
	}
	return files, target, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	bf, err := readBuildFlags(cmd)
	if err != nil {
		return err
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}
	opts, cfg, err := pipelineOptions(cmd, driver.StageEmit)
	if err != nil {
		return err
	}
	if bf.out != "" {
		cfg.Build.OutDir = bf.out
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Build.Jobs = bf.jobs
		opts.Jobs = cfg.EffectiveJobs()
	}
	// кэш не хранит токены и дерево
	if cfg.Build.Cache && !bf.noCache && !bf.showTokens && !bf.showTree {
		cache, cacheErr := driver.OpenDiskCache("py2cpp")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	files, baseDir, err := collectInputs(args[0])
	if err != nil {
		return err
	}

	ctx, span := trace.BeginCtx(cmd.Context(), trace.ScopeDriver, "build")
	span.WithExtra("target", args[0])
	req := &buildpipeline.Request{
		Files:   files,
		BaseDir: baseDir,
		OutDir:  cfg.Build.OutDir,
		NoWrite: bf.stdout,
		Options: opts,
	}
	var res buildpipeline.Result
	var buildErr error
	if wantsProgress(bf.ui, bf, quiet, len(files)) {
		res, buildErr = runBuildWithUI(ctx, "build", buildpipeline.DisplayNames(files, baseDir), req)
	} else {
		res, buildErr = buildpipeline.Build(ctx, req)
	}
	span.End(fmt.Sprintf("%d files", len(files)))
	if res.Units == nil {
		return buildErr
	}

	// сгенерированный код занимает stdout, сводка уходит в stderr
	summaryOut := cmd.OutOrStdout()
	if bf.stdout {
		summaryOut = cmd.ErrOrStderr()
	}
	if err := reportBuild(cmd.OutOrStdout(), summaryOut, printer, res, bf, baseDir, quiet); err != nil {
		return err
	}
	if opts.EnableTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		if res.Units.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), res.Units.Timer.Summary())
		}
	}
	if buildErr != nil {
		return buildErr
	}
	if res.Units.HasErrors() {
		return errReported
	}
	return nil
}

func reportBuild(out, summaryOut io.Writer, printer *diagPrinter, res buildpipeline.Result, bf buildFlags, baseDir string, quiet bool) error {
	loadPaths := make([]string, 0, len(res.Units.LoadErrors))
	for path := range res.Units.LoadErrors {
		loadPaths = append(loadPaths, path)
	}
	slices.Sort(loadPaths)
	for _, path := range loadPaths {
		fmt.Fprintf(printer.w, "error: %v\n", res.Units.LoadErrors[path])
	}

	var errs []error
	for _, u := range res.Units.Units {
		if err := printer.unit(u); err != nil {
			errs = append(errs, err)
		}
		if u.HasErrors() {
			continue
		}
		if bf.showTokens && len(u.Tokens) > 0 {
			fmt.Fprintf(out, "--- tokens: %s ---\n", buildpipeline.DisplayName(u.Path, baseDir))
			errs = append(errs, diagfmt.FormatTokensPretty(out, u.Tokens))
		}
		if bf.showTree && u.Builder != nil {
			fmt.Fprintf(out, "--- tree: %s ---\n", buildpipeline.DisplayName(u.Path, baseDir))
			errs = append(errs, diagfmt.FormatASTPretty(out, u.Builder, u.Program, u.Sema))
		}
		if bf.stdout {
			fmt.Fprint(out, u.Output)
		}
		if !quiet {
			writeSummary(summaryOut, buildpipeline.DisplayName(u.Path, baseDir), u, res.Outputs[u.Path])
		}
	}
	return errors.Join(errs...)
}

// writeSummary prints the per-unit report: token and node counts and where
// the C++ went.
func writeSummary(w io.Writer, name string, u *driver.Unit, output string) {
	status := "compiled"
	if u.Cached {
		status = "up to date"
	}
	fmt.Fprintf(w, "%s %s\n", status, name)
	fmt.Fprintf(w, "    -   tokens: %d\n", u.Summary.Tokens)
	fmt.Fprintf(w, "    -   nodes:  %d\n", u.Summary.Nodes)
	if output != "" {
		fmt.Fprintf(w, "    -   output: %s\n", output)
	}
}
