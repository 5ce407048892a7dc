// Package trace provides the structured logging subsystem of py2cpp.
//
// Tracing records compilation phases and per-file processing so slow or
// stuck builds can be diagnosed.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	py2cpp build --trace=- --trace-level=phase src/
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when disabled
//   - StreamTracer: immediate write to output (file/stderr), text or NDJSON
//   - RingTracer: circular buffer, dumped when a command fails
//   - MultiTracer: combines several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only the ring dump on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including statement-level events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
