package safejson

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/GriffinCanCode/safejson/monitoring"
)

// DefaultMaxSize caps readable file size when Config.MaxSize is unset.
const DefaultMaxSize int64 = 10_000_000

// Config describes a Store. It is consumed once by New; the store
// never mutates afterward.
type Config struct {
	// BasePath is the containment root. When set, every operation's
	// path must resolve inside it. Empty disables containment.
	BasePath string

	// Schema is validated against on every operation unless a call
	// overrides it. Nil disables validation.
	Schema *Schema

	// Encoding is the IANA name of the on-disk text encoding for
	// reads and writes. Empty means UTF-8.
	Encoding string

	// MaxSize caps readable file size in bytes. Values < 1 mean
	// DefaultMaxSize.
	MaxSize int64

	// Logger receives one record per significant step. Nil means no
	// logging; the store never touches global logger state.
	Logger *zap.Logger

	// Silent drops all log output even when Logger is set.
	Silent bool
}

// Store reads and writes JSON files defensively. Construct with New;
// the zero value is not usable. A Store holds no mutable state, so
// concurrent use is safe with respect to the store itself (two writers
// to the same path still race at the final rename, last one wins).
type Store struct {
	base     string
	schema   *Schema
	encoding string
	enc      encoding.Encoding
	maxSize  int64
	log      *zap.Logger
	metrics  *monitoring.Metrics
}

// New builds a Store from cfg. The base path is canonicalized once
// here; an unknown encoding name is rejected here rather than on every
// call.
func New(cfg Config) (*Store, error) {
	base := ""
	if cfg.BasePath != "" {
		resolved, err := resolvePath(cfg.BasePath)
		if err != nil {
			return nil, fmt.Errorf("resolve base path: %w", err)
		}
		base = resolved
	}

	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	maxSize := cfg.MaxSize
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}

	logger := cfg.Logger
	if logger == nil || cfg.Silent {
		logger = zap.NewNop()
	}

	return &Store{
		base:     base,
		schema:   cfg.Schema,
		encoding: cfg.Encoding,
		enc:      enc,
		maxSize:  maxSize,
		log:      logger,
	}, nil
}

// WithMetrics attaches Prometheus instrumentation and returns the
// store for chaining. Call before the store is shared.
func (s *Store) WithMetrics(m *monitoring.Metrics) *Store {
	s.metrics = m
	return s
}

// BasePath returns the canonicalized containment root, empty when
// containment is disabled.
func (s *Store) BasePath() string {
	return s.base
}

// effectiveSchema picks the per-call override when present.
func (s *Store) effectiveSchema(override *Schema) *Schema {
	if override != nil {
		return override
	}
	return s.schema
}

// observe records one finished operation.
func (s *Store) observe(op string, res Result, dur time.Duration) {
	if s.metrics == nil {
		return
	}
	code := "ok"
	if !res.Success {
		code = string(res.Code)
	}
	s.metrics.RecordOperation(op, code, dur)
}
