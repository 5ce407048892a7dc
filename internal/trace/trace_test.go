package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevelAndMode(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for bad level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
}

func TestShouldEmit(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeModule) {
		t.Errorf("phase level must stop at pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Errorf("detail level must stop at module scope")
	}
	if LevelError.ShouldEmit(ScopeDriver) || !LevelDebug.ShouldEmit(ScopeNode) {
		t.Errorf("error/debug level mismatch")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	root := Begin(tr, ScopeDriver, "build", 0)
	pass := Begin(tr, ScopePass, "parse", root.ID())
	pass.WithExtra("nodes", "7").WithExtra("file", "a.py").End("ok")
	// module scope отфильтрован на уровне phase
	Begin(tr, ScopeModule, "file:a.py", root.ID()).End("")
	root.End("")

	out := buf.String()
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("expected 4 lines, got:\n%s", out)
	}
	if !strings.Contains(out, "← parse (ok) {file=a.py, nodes=7}") {
		t.Fatalf("missing parse end line:\n%s", out)
	}
	if strings.Contains(out, "file:a.py") {
		t.Fatalf("module span leaked at phase level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "stmt", "Assign", 0)
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "node" || ev["detail"] != "Assign" {
		t.Fatalf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil || strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump: %v\n%s", err, buf.String())
	}
}

func TestMultiAndContext(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if m.Ring() != ring {
		t.Fatalf("Ring() must find the ring tracer")
	}

	ctx := WithTracer(context.Background(), m)
	ctx, span := BeginCtx(ctx, ScopeDriver, "check")
	if CurrentSpan(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("span not propagated")
	}
	_, child := BeginCtx(ctx, ScopePass, "sema")
	child.End("")
	span.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 || snap[1].ParentID != span.ID() {
		t.Fatalf("ring = %+v", snap)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer = %v, %v", tr, err)
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	if s := Begin(Nop, ScopeDriver, "x", 0); s.ID() != 0 || s.End("") != 0 {
		t.Fatalf("nop span must be inert")
	}
}
