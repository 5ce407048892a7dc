package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"py2cpp/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле вместе со строкой и колонкой.
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32 // 1-based
	Col  uint32 // 1-based, в символах
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Line:  1,
		Col:   1,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Rest returns the unread part of the content.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// Prev returns the character just before the cursor, or 0 at the start.
func (c *Cursor) Prev() rune {
	if c.Off == 0 || c.Off > c.Limit {
		return 0
	}
	r, _ := utf8.DecodeLastRune(c.File.Content[:c.Off])
	return r
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Advance consumes n bytes and updates line/column bookkeeping:
// k >= 1 line breaks add k lines and reset the column to one plus the
// characters after the last break; otherwise the column moves by the
// consumed character count.
func (c *Cursor) Advance(n int) string {
	end := min(int(c.Off)+n, int(c.Limit))
	text := string(c.File.Content[c.Off:end])
	if breaks := strings.Count(text, "\n"); breaks > 0 {
		tail := text[strings.LastIndexByte(text, '\n')+1:]
		c.Line += uint32(breaks)                         //nolint:gosec // bounded by content length
		c.Col = uint32(utf8.RuneCountInString(tail)) + 1 //nolint:gosec // bounded by content length
	} else {
		c.Col += uint32(utf8.RuneCountInString(text)) //nolint:gosec // bounded by content length
	}
	c.Off = uint32(end) //nolint:gosec // end <= Limit
	return text
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Here returns an empty span at the cursor.
func (c *Cursor) Here() source.Span {
	return source.Span{File: c.File.ID, Start: c.Off, End: c.Off}
}
