// Package diag defines the diagnostic model shared by the document loader,
// the index builder and the CLI.
//
// Diagnostic is the central record:
//
//   - Severity is one of Info, Warning or Error (severity.go).
//   - Code is a compact numeric identifier with a stable string form
//     (DOC, DCL, IDX and XRF ranges, see codes.go).
//   - Primary is the source.Span inside the XML document the finding refers to.
//   - Notes carry secondary spans, for example the first declaration of a
//     name that was declared twice.
//
// Stages emit through a Reporter so they do not depend on storage. The
// builder helpers (ReportError, ReportWarning, ReportInfo) collect notes
// before Emit. BagReporter gathers everything into a Bag, which supports
// sorting and deduplication; DedupReporter filters repeats on the way in.
//
// Fatal conditions are Go errors, not diagnostics. Diagnostics describe the
// recoverable findings of a successful build.
package diag
