package diag

import "strings"

// Severity orders diagnostics. Only errors stop the pipeline; warnings and
// infos are printed and compilation goes on.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// Label is the lower-case name used by one-line listings and JSON.
func (s Severity) Label() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// String is the upper-case name of pretty headers.
func (s Severity) String() string {
	return strings.ToUpper(s.Label())
}

// Blocks reports whether a diagnostic of this severity keeps the next stage
// from running.
func (s Severity) Blocks() bool {
	return s >= SevError
}
