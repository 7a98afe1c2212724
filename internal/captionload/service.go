// Package captionload reads timed-text documents from files or streams and
// turns them into cues, consulting the cue cache when one is configured.
//
// Each load runs three phases. Read collects the raw bytes, decode builds
// the markup tree, and captions runs the cue parser. A failure is returned
// as a *playererr.Error naming the phase. Cache failures are logged and never
// fail a load.
package captionload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"captions/internal/cuecache"
	"captions/internal/dfxp"
	"captions/internal/logging"
	"captions/internal/playererr"
	"captions/internal/timedtext"
)

// ErrTooLarge reports a document exceeding Options.MaxBytes.
var ErrTooLarge = errors.New("document exceeds size limit")

// Cache is the subset of the cue cache the loader needs.
type Cache interface {
	Get(ctx context.Context, digest string) ([]dfxp.Cue, bool, error)
	Put(ctx context.Context, digest, source string, cues []dfxp.Cue) error
}

// Options configures a Service.
type Options struct {
	Logger *slog.Logger
	// Cache is optional. Leave nil to parse every document.
	Cache          Cache
	PreserveSource bool
	// MaxBytes limits document size. Zero means unlimited.
	MaxBytes int64
}

// Result describes one completed load.
type Result struct {
	Cues          []dfxp.Cue
	Source        string
	Digest        string
	CorrelationID string
	Cached        bool
}

// Service loads caption documents.
type Service struct {
	logger         *slog.Logger
	cache          Cache
	preserveSource bool
	maxBytes       int64
}

// New constructs a Service.
func New(opts Options) *Service {
	return &Service{
		logger:         logging.NewComponentLogger(opts.Logger, "captionload"),
		cache:          opts.Cache,
		preserveSource: opts.PreserveSource,
		maxBytes:       opts.MaxBytes,
	}
}

// LoadFile loads the document stored at path.
func (s *Service) LoadFile(ctx context.Context, path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, playererr.Wrap(playererr.PhaseRead, fmt.Errorf("open captions: %w", err))
	}
	defer file.Close()
	return s.LoadReader(ctx, file, filepath.Base(path))
}

// LoadReader loads a document from r. Source labels the document in logs
// and cache listings.
func (s *Service) LoadReader(ctx context.Context, r io.Reader, source string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	correlationID, ok := logging.CorrelationIDFromContext(ctx)
	if !ok {
		correlationID = uuid.NewString()
		ctx = logging.WithCorrelationID(ctx, correlationID)
	}
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldSource, source))
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, playererr.Wrap(playererr.PhaseRead, err)
	}
	data, err := s.read(r)
	if err != nil {
		return nil, playererr.Wrap(playererr.PhaseRead, err)
	}

	result := &Result{
		Source:        source,
		Digest:        cuecache.Digest(data),
		CorrelationID: correlationID,
	}
	logger = logger.With(logging.String("digest", result.Digest[:12]))

	if cues, hit := s.lookup(ctx, logger, result.Digest); hit {
		result.Cues = cues
		result.Cached = true
		logger.Info("captions loaded",
			logging.String(logging.FieldEventType, "captions_loaded"),
			logging.Int("cues", len(cues)),
			logging.Bool("cached", true),
			logging.Duration("elapsed", time.Since(start)),
		)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, playererr.Wrap(playererr.PhaseDecode, err)
	}
	tree, err := timedtext.ParseEncoded(bytes.NewReader(data))
	if err != nil {
		logging.WarnWithContext(logger, "caption document unreadable", "decode_failed",
			logging.Error(err),
		)
		return nil, playererr.Wrap(playererr.PhaseDecode, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, playererr.Wrap(playererr.PhaseCaptions, err)
	}
	parser := dfxp.NewParser(dfxp.Options{Logger: logger, PreserveSource: s.preserveSource})
	cues, err := parser.Parse(tree)
	if err != nil {
		loadErr := playererr.Wrap(playererr.PhaseCaptions, err)
		logging.WarnWithContext(logger, "captions rejected", "captions_failed",
			logging.Int("code", playererr.CodeOf(loadErr)),
			logging.Error(err),
		)
		return nil, loadErr
	}
	result.Cues = cues

	s.store(ctx, logger, result)
	logger.Info("captions loaded",
		logging.String(logging.FieldEventType, "captions_loaded"),
		logging.Int("cues", len(cues)),
		logging.Bool("cached", false),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *Service) read(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("no caption source")
	}
	if s.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read captions: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, s.maxBytes)
	}
	return data, nil
}

func (s *Service) lookup(ctx context.Context, logger *slog.Logger, digest string) ([]dfxp.Cue, bool) {
	if s.cache == nil {
		return nil, false
	}
	cues, ok, err := s.cache.Get(ctx, digest)
	if err != nil {
		logging.WarnWithContext(logger, "cue cache lookup failed", "cache_get_failed",
			logging.String(logging.FieldImpact, "document parsed without cache"),
			logging.Error(err),
		)
		return nil, false
	}
	if ok {
		logger.Debug("cue cache hit")
	}
	return cues, ok
}

func (s *Service) store(ctx context.Context, logger *slog.Logger, result *Result) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, result.Digest, result.Source, result.Cues); err != nil {
		logging.WarnWithContext(logger, "cue cache store failed", "cache_put_failed",
			logging.String(logging.FieldImpact, "next load parses again"),
			logging.Error(err),
		)
	}
}
