// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, parser and type checker.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting, IO or CLI integration. Rendering
// lives in internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     The numeric range encodes the producing stage (LEX/SYN/SEM/IO/OBS).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional text edits a tool could apply.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The parser,
// for example, constructs a ReportBuilder via ReportError and chains WithNote
// or WithFix before calling Emit. diag.BagReporter aggregates diagnostics
// into a Bag, which supports sorting, deduplication and limits.
//
// Every stage owns its own Bag; bags of different stages are never merged
// by the driver.
package diag
