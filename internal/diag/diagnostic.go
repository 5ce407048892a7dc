package diag

import (
	"py2cpp/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Stage is a shortcut for d.Code.Stage().
func (d Diagnostic) Stage() Stage {
	return d.Code.Stage()
}
