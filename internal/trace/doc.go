// Package trace records what the linter did and how long it took.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	mermaidlint lint --trace=- --trace-level=stage docs/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr, text or NDJSON
//
// # Levels and scopes
//
// Events carry a Scope (driver, file, stage, node); the Level decides which
// scopes are written. LevelFile shows per-document boundaries, LevelStage
// adds preprocess/detect/parse, LevelDebug adds parser recovery points.
//
// # Context Propagation
//
// The CLI stores the tracer and its command span in the context; the driver
// picks both up, the library receives them in lint.Options:
//
//	ctx = trace.WithParent(trace.WithTracer(ctx, tracer), cmdSpan.ID())
//	t, parentID := trace.FromContext(ctx), trace.ParentFromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
