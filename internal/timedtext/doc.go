// Package timedtext builds and queries the element tree of a timed-text
// (TTML/DFXP) document.
//
// Parse tokenizes raw markup with golang.org/x/net/html and keeps a small
// mutable tree of elements, text, and comments. Tag and attribute names keep
// their namespace prefixes ("tt:p", "ttp:frameRate") and are matched without
// regard to case. Each node remembers the exact bytes it was read from, so the
// inner markup of an element reproduces the producer's spelling.
//
// The Document and Element interfaces describe the query surface the caption
// parser relies on; *Tree and *Node are the implementations used in
// production, and tests can substitute their own.
package timedtext
