package driver_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"

	"py2cpp/internal/driver"
	"py2cpp/internal/observ"
)

func TestListSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.py", "x = 1")
	writeSource(t, dir, "a.py", "x = 2")
	writeSource(t, dir, "nested/c.py", "x = 3")
	writeSource(t, dir, ".hidden/d.py", "x = 4")
	writeSource(t, dir, "notes.txt", "not python")

	files, err := driver.ListSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "nested", "c.py"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v", files)
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.py", "x = 5\nprint(x)\n")
	writeSource(t, dir, "bad.py", "print(y)")
	writeSource(t, dir, "sub/more.py", "s = 'a' + 'b'")

	var phases atomic.Int32
	opts := driver.Options{Jobs: 2, PhaseObserver: func(driver.PhaseEvent) { phases.Add(1) }}
	res, err := driver.CompileDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Root != dir || len(res.Units) != 3 || len(res.LoadErrors) != 0 {
		t.Fatalf("result = %+v", res)
	}
	var names []string
	for _, u := range res.Units {
		names = append(names, filepath.Base(u.Path))
	}
	if !slices.Equal(names, []string{"bad.py", "ok.py", "more.py"}) {
		t.Fatalf("order = %v", names)
	}
	if !res.HasErrors() {
		t.Fatalf("bad.py must make the run fail")
	}
	if res.Units[1].Output != helloOutput {
		t.Fatalf("ok.py output:\n%s", res.Units[1].Output)
	}
	if phases.Load() == 0 {
		t.Fatalf("observer not called")
	}
	var merged []string
	for _, p := range res.Timer.Phases() {
		merged = append(merged, p.Name)
	}
	if !slices.Contains(merged, observ.PhaseLoad) || !slices.Contains(merged, observ.PhaseEmit) {
		t.Fatalf("merged phases = %v", merged)
	}
}

func TestCompileFilesLoadErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "x = 1")
	missing := filepath.Join(dir, "missing.py")
	res, err := driver.CompileFiles(context.Background(), []string{good, missing}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Units) != 1 || res.LoadErrors[missing] == nil {
		t.Fatalf("result = %+v", res)
	}
	if !res.HasErrors() {
		t.Fatalf("load error must fail the run")
	}
}

func TestCompileFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x = 1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.CompileFiles(ctx, []string{path}, driver.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestCompileDirMissing(t *testing.T) {
	if _, err := driver.CompileDir(context.Background(), filepath.Join(t.TempDir(), "nope"), driver.Options{}); err == nil {
		t.Fatal("expected error")
	}
}
