// Package dfxp turns a parsed DFXP/TTML document into caption cues.
//
// Parsing runs four stages over one document: the document is validated, the
// frame rate is read from the root tt element, caption paragraphs are located
// under p, tt:p or tts:p (first non-empty spelling wins), and each paragraph
// is normalized into a Cue. Line breaks become "\r\n", whitespace between
// tags is removed, and tt:/tts: prefixes are stripped from any markup left in
// the text.
//
// The parse is all-or-nothing. A missing document fails with
// CodeMissingDocument; a document that yields no cue fails with
// CodeNoUsableCaptions. Bad frame rates, empty paragraphs and unreadable
// timecodes are absorbed and reported only through the optional logger.
//
// Break elements are rewritten inside the caller's document. Use
// Options.PreserveSource to parse a private copy of a *timedtext.Tree instead.
package dfxp
