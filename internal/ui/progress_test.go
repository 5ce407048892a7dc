package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"py2cpp/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("build", files, nil).(*progressModel)
}

func TestApplyEventTracksFiles(t *testing.T) {
	m := newTestModel("a.py", "b.py")
	m.applyEvent(buildpipeline.Event{File: "a.py", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusWorking})
	if got := m.items[0].label(); got != "checking" {
		t.Fatalf("status = %q", got)
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}
	m.applyEvent(buildpipeline.Event{File: "a.py", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.py", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusError})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	if finished, failed := m.tally(); finished != 2 || failed != 1 {
		t.Fatalf("tally = %d, %d", finished, failed)
	}
	// неизвестный файл игнорируется
	m.applyEvent(buildpipeline.Event{File: "c.py", Status: buildpipeline.StatusDone})
	if len(m.items) != 2 {
		t.Fatalf("items = %v", m.items)
	}
}

func TestPipelineEventSetsHeader(t *testing.T) {
	m := newTestModel("a.py")
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: build (writing)") || !strings.Contains(view, "a.py") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestFailedFileShowsStageAndError(t *testing.T) {
	m := newTestModel("a.py", "a.py")
	if len(m.items) != 1 {
		t.Fatalf("duplicate file kept: %v", m.items)
	}
	m.applyEvent(buildpipeline.Event{File: "a.py", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusError, Err: errors.New("disk full")})
	view := m.View()
	for _, want := range []string{"error", "failed in write: disk full", "1/1 files", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestEmptyModelRendersNothing(t *testing.T) {
	if v := newTestModel().View(); v != "" {
		t.Fatalf("view = %q", v)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.py", 20, "short.py"},
		{"very/long/path/to/file.py", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	// широкие символы занимают две колонки
	got := truncate("файл/日本語/main.py", 8)
	if w := runewidth.StringWidth(got); w > 8 {
		t.Fatalf("width %d > 8: %q", w, got)
	}
}
