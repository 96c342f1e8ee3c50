// Package diag defines the diagnostic model shared by every validator pass
// and by the structural modifier.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by the semantic validator's seven passes.
//   - Offer lightweight utilities (Reporter, Bag) that let a pass emit
//     diagnostics without coupling to storage or rendering.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – NOTE < HELP < WARNING < ERROR, defined in severity.go.
//   - Code – a stable numeric identifier (see codes.go) rendered as "E3004"
//     or "W1003".
//   - Message – short, actionable text.
//   - Primary span – the canonical source.Span pointing at the issue.
//   - Notes – secondary spans with their own message, e.g. "first declared
//     here"; each must add context rather than repeat the message.
//   - Help – standalone suggestion strings with no span of their own, e.g.
//     a "did you mean 'Engine'?" produced by a similarity search.
//
// # Emitting diagnostics
//
// A pass uses a Reporter to decouple emission from storage: construct a
// ReportBuilder via NewReportBuilder (or ReportError/ReportWarning/
// ReportNote), chain WithNote/WithHelp, and call Emit. diag.BagReporter
// adapts a *Bag to Reporter; Bag supports sorting, deduplication,
// filtering, and transformation once a validation run completes.
package diag
