package buildpipeline

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"py2cpp/internal/driver"
	"py2cpp/internal/observ"
)

// DisplayName returns path relative to baseDir when it lies inside it,
// with forward slashes.
func DisplayName(path, baseDir string) string {
	path = filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// DisplayNames maps every file to its display name, deduplicated and sorted.
func DisplayNames(files []string, baseDir string) []string {
	out := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		name := DisplayName(file, baseDir)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// stageForPhase maps driver phases onto progress stages.
func stageForPhase(phase string) (Stage, bool) {
	switch phase {
	case observ.PhaseLoad, observ.PhaseLex, observ.PhaseParse:
		return StageParse, true
	case observ.PhaseSema, observ.PhasePyRef:
		return StageCheck, true
	case observ.PhaseEmit, observ.PhaseCached:
		return StageEmit, true
	case observ.PhaseWrite:
		return StageWrite, true
	}
	return "", false
}

// phaseObserver turns driver phase events into per-file progress events.
// Units run concurrently, so state is guarded.
type phaseObserver struct {
	sink    ProgressSink
	baseDir string

	mu   sync.Mutex
	last map[string]Stage
}

func newPhaseObserver(sink ProgressSink, baseDir string) *phaseObserver {
	return &phaseObserver{sink: sink, baseDir: baseDir, last: make(map[string]Stage)}
}

// OnPhase emits a working event the first time a file enters a stage.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil || p.sink == nil || ev.Status != driver.PhaseStart && ev.Name != observ.PhaseCached {
		return
	}
	stage, ok := stageForPhase(ev.Name)
	if !ok {
		return
	}
	file := DisplayName(ev.Path, p.baseDir)
	p.mu.Lock()
	if p.last[file] == stage {
		p.mu.Unlock()
		return
	}
	p.last[file] = stage
	p.mu.Unlock()
	p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusWorking})
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}

func emitStage(sink ProgressSink, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err})
}
