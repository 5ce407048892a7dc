package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_LoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	raw := []byte("\xEF\xBB\xBFx = 1\r\nprint(x)\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x = 1\nprint(x)\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM|CRLF", f.Flags)
	}
	if got, ok := fs.GetLatest(path); !ok || got != id {
		t.Errorf("GetLatest = %d, %v", got, ok)
	}
}

func TestFileSet_LoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.py", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n'
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}

	// неизвестный файл
	start, end := fs.Resolve(Span{File: 42})
	if start != (LineCol{1, 1}) || end != (LineCol{1, 1}) {
		t.Errorf("unknown file should resolve to 1:1")
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.py", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFile_DisplayPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("/work/proj/src/a.py", nil, 0)
	f := fs.Get(id)
	if got := f.DisplayPath("/work/proj"); got != "src/a.py" {
		t.Errorf("DisplayPath = %q", got)
	}
	if got := f.DisplayPath("/elsewhere"); got != "/work/proj/src/a.py" {
		t.Errorf("DisplayPath outside base = %q", got)
	}
	if f.BaseName() != "a.py" {
		t.Errorf("BaseName = %q", f.BaseName())
	}
}

func TestPositionCountsCharacters(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("u.py", []byte("x = 'é'\ny = 'ü' + z")))
	// 'z' стоит после двухбайтового ü
	off := uint32(len("x = 'é'\ny = 'ü' + "))
	if got := f.Position(off); got != (LineCol{Line: 2, Col: 11}) {
		t.Fatalf("Position = %+v", got)
	}
	if _, end := fs.Resolve(Span{File: f.ID, Start: off, End: off}); end.Col != 12 {
		t.Fatalf("Resolve stays byte-based, got col %d", end.Col)
	}
	if got := fs.Position(Span{File: 99}); got != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("unknown file = %+v", got)
	}
}
