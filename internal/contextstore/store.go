package contextstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/semantics"
)

var tracer = otel.Tracer("personalization.contextstore")

// maxRecordKeywords caps keywords extracted per record.
const maxRecordKeywords = 10

// Store is the write/read service over the append-only context log.
//
// Store holds no per-request state; all methods take explicit identifiers
// and are safe to call concurrently for the same or different users.
type Store struct {
	adapter  PersistenceAdapter
	analyzer *semantics.Analyzer
	provider embeddings.Provider // nil when embeddings are not configured
	logger   *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithProvider attaches an embedding provider. Embeddings are attached to
// new records best-effort; provider failures never fail a write.
func WithProvider(p embeddings.Provider) Option {
	return func(s *Store) { s.provider = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// withClock overrides the timestamp source (tests only).
func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over the given adapter and analyzer.
func NewStore(adapter PersistenceAdapter, analyzer *semantics.Analyzer, opts ...Option) (*Store, error) {
	if adapter == nil {
		return nil, fmt.Errorf("contextstore: adapter is required")
	}
	if analyzer == nil {
		analyzer = semantics.NewAnalyzer(semantics.Config{})
	}

	s := &Store{
		adapter:  adapter,
		analyzer: analyzer,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = NewMetrics(s.logger)
	return s, nil
}

// Append converts one raw interaction into an immutable Record and stores
// it. The record carries the semantic analysis, extracted keywords, the
// importance score, and (best-effort) an embedding.
//
// Persistence errors are returned to the caller: silently losing a write
// would corrupt the complete-history invariant the profile builder relies
// on. Embedding failures are only logged.
func (s *Store) Append(ctx context.Context, userID string, recordType RecordType, source, content string, meta map[string]any) (Record, error) {
	ctx, span := tracer.Start(ctx, "contextstore.Append")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.type", string(recordType)),
		attribute.Int("record.content_length", len(content)),
	)

	if userID == "" {
		return Record{}, ErrEmptyUserID
	}
	if !recordType.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidRecordType, recordType)
	}

	eventType := semantics.EventType(recordType)
	rec := Record{
		ID:         uuid.New().String(),
		UserID:     userID,
		Content:    content,
		Type:       recordType,
		Source:     source,
		Timestamp:  s.now().UTC(),
		Importance: s.analyzer.Importance(content, eventType),
		Keywords:   semantics.ExtractKeywords(content, maxRecordKeywords),
		Analysis:   s.analyzer.Analyze(content, eventType),
		Metadata:   meta,
	}

	rec.Embedding = s.embed(ctx, content)

	if err := s.adapter.Append(ctx, rec); err != nil {
		span.SetStatus(codes.Error, "append failed")
		return Record{}, fmt.Errorf("appending record: %w", err)
	}

	s.metrics.RecordStored(ctx, rec.Type, rec.Embedding != nil)
	return rec, nil
}

// embed returns the content vector, or nil when no provider is configured
// or the provider is unavailable for this call.
func (s *Store) embed(ctx context.Context, content string) []float32 {
	if s.provider == nil || strings.TrimSpace(content) == "" {
		return nil
	}

	vec, err := s.provider.EmbedDocuments(ctx, []string{content})
	if err != nil {
		s.logger.Warn("embedding unavailable, storing record without vector", zap.Error(err))
		return nil
	}
	if len(vec) != 1 {
		return nil
	}
	return vec[0]
}

// Records returns a user's records matching the filter, timestamp
// ascending. See PersistenceAdapter.QueryByUser for limit semantics.
func (s *Store) Records(ctx context.Context, userID string, f Filter, limit int) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "contextstore.Records")
	defer span.End()

	if userID == "" {
		return nil, ErrEmptyUserID
	}

	records, err := s.adapter.QueryByUser(ctx, userID, f, limit)
	if err != nil {
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("querying records: %w", err)
	}
	span.SetAttributes(attribute.Int("records.count", len(records)))
	return records, nil
}
