// Package buildpipeline orchestrates a build: parallel compilation of the
// requested units, progress events and writing of the generated C++.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"py2cpp/internal/driver"
	"py2cpp/internal/observ"
)

// Request configures a build of one or more source files.
type Request struct {
	Files []string
	// BaseDir is the root display names and output subdirectories are
	// computed against.
	BaseDir string
	OutDir  string
	// NoWrite keeps the generated code in memory (build --stdout).
	NoWrite  bool
	Options  driver.Options
	Progress ProgressSink
}

// Result captures build artefacts and stage timings.
type Result struct {
	Units *driver.DirResult
	// Outputs maps input paths to the written .cpp files.
	Outputs map[string]string
	Timings Timings
}

// Build compiles every requested file and writes the generated code. Source
// diagnostics do not make Build fail; the error is reserved for
// infrastructure problems such as an unwritable output directory.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no source files to build")
	}

	emitQueued(req.Progress, DisplayNames(req.Files, req.BaseDir))
	observer := newPhaseObserver(req.Progress, req.BaseDir)
	opts := req.Options
	opts.Stage = driver.StageEmit
	next := opts.PhaseObserver
	opts.PhaseObserver = func(ev driver.PhaseEvent) {
		observer.OnPhase(ev)
		if next != nil {
			next(ev)
		}
	}

	units, err := driver.CompileFiles(ctx, req.Files, opts)
	if err != nil {
		emitStage(req.Progress, StageParse, StatusError, err)
		return result, err
	}
	result.Units = units
	result.Outputs = make(map[string]string, len(units.Units))

	for path, loadErr := range units.LoadErrors {
		emitFile(req.Progress, DisplayName(path, req.BaseDir), StageParse, StatusError, loadErr)
	}

	var writeErrs []error
	for _, u := range units.Units {
		name := DisplayName(u.Path, req.BaseDir)
		if u.HasErrors() {
			emitFile(req.Progress, name, failedStage(u), StatusError, nil)
			continue
		}
		if req.NoWrite {
			emitFile(req.Progress, name, StageEmit, StatusDone, nil)
			continue
		}
		out := outputPath(u.Path, name, req.OutDir)
		emitFile(req.Progress, name, StageWrite, StatusWorking, nil)
		var werr error
		u.Timer.Measure(observ.PhaseWrite, func() string {
			werr = writeOutput(out, u.Output)
			return out
		})
		if werr != nil {
			writeErrs = append(writeErrs, werr)
			emitFile(req.Progress, name, StageWrite, StatusError, werr)
			continue
		}
		result.Outputs[u.Path] = out
		emitFile(req.Progress, name, StageWrite, StatusDone, nil)
	}

	merged := observ.NewTimer()
	for _, u := range units.Units {
		merged.Merge(u.Timer)
	}
	units.Timer = merged
	for _, phase := range merged.Phases() {
		if stage, ok := stageForPhase(phase.Name); ok {
			result.Timings.Add(stage, phase.Dur)
		}
	}

	if err := errors.Join(writeErrs...); err != nil {
		emitStage(req.Progress, StageWrite, StatusError, err)
		return result, err
	}
	emitStage(req.Progress, StageWrite, StatusDone, nil)
	return result, nil
}

func failedStage(u *driver.Unit) Stage {
	switch {
	case u.Lexical.HasErrors(), u.Syntax.HasErrors():
		return StageParse
	case u.Reached >= driver.StageCheck:
		return StageCheck
	}
	return StageEmit
}

// outputPath mirrors the display directory of the input under outDir:
// src/app/main.py built from src becomes <outDir>/app/main.cpp.
func outputPath(path, display, outDir string) string {
	sub := filepath.Dir(filepath.FromSlash(display))
	if filepath.IsAbs(sub) || sub == "." {
		return driver.OutputName(path, outDir)
	}
	return driver.OutputName(path, filepath.Join(outDir, sub))
}

func writeOutput(path, code string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	// #nosec G306 -- generated sources are meant to be read by other tools
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
