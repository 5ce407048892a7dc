package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"py2cpp/internal/observ"
)

// SourceExt is the extension CompileDir picks up.
const SourceExt = ".py"

// DirResult holds the outcome of compiling several units.
type DirResult struct {
	Root string
	// Units are in path order; files that failed to load are absent.
	Units      []*Unit
	LoadErrors map[string]error
	// Timer sums the phases of every unit.
	Timer *observ.Timer
}

// HasErrors reports whether any unit failed to load or compile.
func (r *DirResult) HasErrors() bool {
	if r == nil {
		return false
	}
	if len(r.LoadErrors) > 0 {
		return true
	}
	for _, u := range r.Units {
		if u.HasErrors() {
			return true
		}
	}
	return false
}

// ListSources returns every *.py file under dir, skipping hidden
// directories, sorted by path.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every source file under dir in parallel.
func CompileDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	res, err := CompileFiles(ctx, files, opts)
	if res != nil {
		res.Root = dir
	}
	return res, err
}

// CompileFiles compiles independent units with at most opts.Jobs running at
// once. Every goroutine owns its unit; results are collected by index.
func CompileFiles(ctx context.Context, files []string, opts Options) (*DirResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	units := make([]*Unit, len(files))
	loadErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			// отмена проверяется только между единицами
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := CompileFile(gctx, path, opts)
			if err != nil {
				loadErrs[i] = err
				return nil
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DirResult{
		Units:      make([]*Unit, 0, len(files)),
		LoadErrors: make(map[string]error),
		Timer:      observ.NewTimer(),
	}
	for i, u := range units {
		if loadErrs[i] != nil {
			res.LoadErrors[files[i]] = loadErrs[i]
			continue
		}
		res.Units = append(res.Units, u)
		res.Timer.Merge(u.Timer)
	}
	return res, nil
}
