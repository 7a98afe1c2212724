// Package logging assembles the structured slog loggers used by the caption
// loader, HTTP server, and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and tees console output with a JSON log file when a log directory
// is configured. Context helpers carry a per-load correlation ID so every line
// written while a document is processed can be grouped. A no-op logger is
// provided for tests and library callers that do not want output.
//
// Warnings should say what happened, what it costs, and what to try next;
// WarnWithContext fills in event_type, error_hint and impact when callers
// leave them out.
package logging
