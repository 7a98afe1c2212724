package cuecache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"captions/internal/dfxp"
)

// Store manages cached cue sets backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Entry summarizes one cached document.
type Entry struct {
	Digest    string
	Source    string
	CueCount  int
	CreatedAt time.Time
	LastHitAt *time.Time
}

// Digest returns the cache key for a document's raw bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cue cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cues cached for digest. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, digest string) ([]dfxp.Cue, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT cues_json FROM cue_sets WHERE digest = ?`, digest).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cues: %w", err)
	}

	var cues []dfxp.Cue
	if err := json.Unmarshal([]byte(payload), &cues); err != nil {
		return nil, false, fmt.Errorf("decode cached cues: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `UPDATE cue_sets SET last_hit_at = ? WHERE digest = ?`, now, digest); err != nil {
		return nil, false, fmt.Errorf("touch cues: %w", err)
	}
	return cues, true, nil
}

// Put stores cues for digest, replacing any previous entry.
func (s *Store) Put(ctx context.Context, digest, source string, cues []dfxp.Cue) error {
	if strings.TrimSpace(digest) == "" {
		return errors.New("digest is required")
	}
	payload, err := json.Marshal(cues)
	if err != nil {
		return fmt.Errorf("encode cues: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO cue_sets (digest, source, cue_count, cues_json, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(digest) DO UPDATE SET
             source = excluded.source,
             cue_count = excluded.cue_count,
             cues_json = excluded.cues_json,
             created_at = excluded.created_at,
             last_hit_at = NULL`,
		digest,
		nullableString(source),
		len(cues),
		string(payload),
		now,
	)
	if err != nil {
		return fmt.Errorf("put cues: %w", err)
	}
	return nil
}

// List returns every cached entry, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT digest, source, cue_count, created_at, last_hit_at FROM cue_sets ORDER BY created_at DESC, digest`)
	if err != nil {
		return nil, fmt.Errorf("list cues: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			source    sql.NullString
			createdAt string
			lastHitAt sql.NullString
		)
		if err := rows.Scan(&entry.Digest, &source, &entry.CueCount, &createdAt, &lastHitAt); err != nil {
			return nil, fmt.Errorf("scan cue set: %w", err)
		}
		entry.Source = source.String
		entry.CreatedAt = parseTime(createdAt)
		if lastHitAt.Valid {
			hit := parseTime(lastHitAt.String)
			entry.LastHitAt = &hit
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes every cached entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cue_sets`)
	if err != nil {
		return 0, fmt.Errorf("clear cues: %w", err)
	}
	return res.RowsAffected()
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
