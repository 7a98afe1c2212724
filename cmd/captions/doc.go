// Package main hosts the captions CLI entrypoint and command graph.
//
// The Cobra command tree parses timed-text caption documents into cues,
// serves the same parser over HTTP, and manages the cue cache and
// configuration file. It centralizes configuration resolution and structured
// logging setup so subcommands can focus on output.
//
// Add new functionality to the internal packages first, then surface it
// through a dedicated command or flag here.
package main
