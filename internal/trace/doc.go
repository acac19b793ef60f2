// Package trace records what the index builder is doing while it runs.
//
// Enable tracing from the command line:
//
//	amqpspec index --trace=- --trace-level=phase
//	amqpspec index --trace=build.ndjson --trace-level=detail
//	amqpspec index --trace-mode=log --trace-level=debug
//
// Tracer implementations:
//
//   - Nop: disabled tracing, no allocation on the hot path
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a fatal error
//   - LogTracer: forwards events to a zerolog logger
//   - MultiTracer: fan-out to several tracers
//
// Levels gate scopes: phase shows the driver and the build passes, detail
// adds one span per document, debug adds one event per declaration.
//
// Tracers travel with the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "encodings", 0)
//	defer span.End("")
package trace
