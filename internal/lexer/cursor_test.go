package lexer

import (
	"testing"

	"py2cpp/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

// TestAdvanceBookkeeping проверяет подсчёт строк и колонок
func TestAdvanceBookkeeping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		wantLine uint32
		wantCol  uint32
	}{
		{"no break", "abc", 3, 1, 4},
		{"single break", "ab\ncd", 3, 2, 1},
		{"text after break", "ab\ncd", 5, 2, 3},
		{"two breaks", "\"\"\"a\nb\nxy\"\"\"", 13, 3, 6},
		{"runes count as one", "é=1", 3, 1, 3}, // é занимает 2 байта
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(createFile(tt.input))
			c.Advance(tt.n)
			if c.Line != tt.wantLine || c.Col != tt.wantCol {
				t.Errorf("after Advance(%d): %d:%d, want %d:%d", tt.n, c.Line, c.Col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestCursorEdges(t *testing.T) {
	c := NewCursor(createFile("ab"))
	if c.Prev() != 0 || c.Peek() != 'a' {
		t.Fatalf("start: prev=%q peek=%q", c.Prev(), c.Peek())
	}
	m := c.Mark()
	c.Advance(10) // за пределы: обрезается
	if !c.EOF() || c.Off != 2 {
		t.Fatalf("expected EOF at 2, got %d", c.Off)
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	if c.Rest() != nil || c.Peek() != 0 || c.Prev() != 'b' {
		t.Fatalf("end state mismatch")
	}
}

func TestAtWordBoundary(t *testing.T) {
	if atWordBoundary('é', '1', false) {
		t.Errorf("é1 is not a boundary")
	}
	if !atWordBoundary('→', '1', false) {
		t.Errorf("arrow-digit is a boundary")
	}
	if !atWordBoundary(0, 'a', true) {
		t.Errorf("start of input before a word byte is a boundary")
	}
	if atWordBoundary('x', '1', false) {
		t.Errorf("x1 is not a boundary")
	}
	if !atWordBoundary('a', '.', false) {
		t.Errorf("a. is a boundary")
	}
	if atWordBoundary(' ', '.', false) {
		t.Errorf("space-dot is not a boundary")
	}
}
