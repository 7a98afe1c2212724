// Package timecode converts timed-text timing expressions into seconds.
//
// Timed-text producers disagree on how offsets are written. Seconds accepts
// clock values (MM:SS, HH:MM:SS[.frac], HH:MM:SS:FF), metric offsets with an
// h, m, s, ms or f suffix, bare decimal seconds, and bare integer frame counts.
// Frame-based values are divided by the caller-supplied frame rate.
//
// Numeric fields are read with prefix semantics: the longest leading run that
// forms a real number is used and trailing characters are ignored, so "25fps"
// reads as 25. ParseFloatPrefix exposes that rule for other callers that read
// timing attributes.
package timecode
