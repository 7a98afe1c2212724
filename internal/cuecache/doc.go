// Package cuecache persists parsed caption cues in SQLite, keyed by the
// SHA-256 digest of the source document bytes.
//
// The store uses a single versioned schema. Opening a database written by a
// different schema version fails with ErrSchemaMismatch; delete the file to
// recover.
package cuecache
