// Package preflight provides readiness checks for the filesystem paths,
// cue cache and listen address the caption tools depend on.
//
// The CLI "captions config validate" command runs RunAll and renders each
// Result as a status line. Disabled features are skipped.
package preflight
