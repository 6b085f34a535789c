// Package engine is the public facade of the personalization module.
//
// An Engine is stateless: every operation takes the user ID explicitly
// and derives what it needs from the record log on each call. Nothing is
// loaded into instance fields between calls, so one Engine serves any
// number of concurrent users.
package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/learningpath"
	"github.com/skillpathlabs/personalization/internal/profile"
	"github.com/skillpathlabs/personalization/internal/recommend"
	"github.com/skillpathlabs/personalization/internal/retrieval"
	"github.com/skillpathlabs/personalization/internal/semantics"
	"github.com/skillpathlabs/personalization/internal/similarity"
)

var tracer = otel.Tracer("personalization.engine")

// minRatingForFeedback selects records whose ratings feed the scorer's
// boost term.
const minRatingForFeedback = 4.0

// CandidatePoolProvider supplies the external candidate pool. The engine
// consumes candidates; it never owns or stores them.
type CandidatePoolProvider interface {
	List(ctx context.Context) ([]recommend.CandidateItem, error)
}

// Engine wires the store, retrieval, profile, scoring, and path layers
// behind one API.
type Engine struct {
	adapter   contextstore.PersistenceAdapter
	store     *contextstore.Store
	retriever *retrieval.Engine
	scorer    *recommend.Scorer
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	provider embeddings.Provider
	searcher similarity.Searcher
	weights  recommend.Weights
	logger   *zap.Logger
}

// WithProvider attaches an embedding provider. Without one, records are
// stored unembedded and retrieval always uses keyword mode.
func WithProvider(p embeddings.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithSearcher swaps the similarity search implementation used in vector
// retrieval.
func WithSearcher(s similarity.Searcher) Option {
	return func(o *options) { o.searcher = s }
}

// WithWeights overrides the scoring weights.
func WithWeights(w recommend.Weights) Option {
	return func(o *options) { o.weights = w }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an Engine over the given persistence adapter and analyzer.
func New(adapter contextstore.PersistenceAdapter, analyzer *semantics.Analyzer, opts ...Option) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("engine: adapter is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("engine: analyzer is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	storeOpts := []contextstore.Option{contextstore.WithLogger(o.logger.Named("contextstore"))}
	if o.provider != nil {
		storeOpts = append(storeOpts, contextstore.WithProvider(o.provider))
	}
	store, err := contextstore.NewStore(adapter, analyzer, storeOpts...)
	if err != nil {
		return nil, err
	}

	retriever, err := retrieval.NewEngine(adapter, o.provider, o.searcher, o.logger.Named("retrieval"))
	if err != nil {
		return nil, err
	}

	return &Engine{
		adapter:   adapter,
		store:     store,
		retriever: retriever,
		scorer:    recommend.NewScorer(o.weights),
		logger:    o.logger,
	}, nil
}

// Emit records one upstream interaction for the user.
func (e *Engine) Emit(ctx context.Context, userID string, eventType contextstore.RecordType, source, content string, meta map[string]any) (contextstore.Record, error) {
	return e.store.Append(ctx, userID, eventType, source, content, meta)
}

// RetrieveContext returns up to limit of the user's most relevant records
// for the query.
func (e *Engine) RetrieveContext(ctx context.Context, userID, query string, limit int) ([]contextstore.Record, error) {
	return e.retriever.Retrieve(ctx, userID, query, limit)
}

// GetProfile derives the user's current profile from their full history.
// A user with no history receives the cold-start defaults.
func (e *Engine) GetProfile(ctx context.Context, userID string) (profile.UserContextProfile, error) {
	ctx, span := tracer.Start(ctx, "engine.GetProfile")
	defer span.End()

	records, err := e.loadHistory(ctx, userID)
	if err != nil {
		return profile.UserContextProfile{}, err
	}
	span.SetAttributes(attribute.Int("profile.records", len(records)))
	return profile.Build(records), nil
}

// ContextSummary aggregates the user's history per record type.
func (e *Engine) ContextSummary(ctx context.Context, userID string) (contextstore.Summary, error) {
	return e.store.Summary(ctx, userID)
}

// Recommend scores the candidate pool against the user's profile and
// returns the top count candidates, best first. An empty pool yields an
// empty result.
func (e *Engine) Recommend(ctx context.Context, userID string, pool []recommend.CandidateItem, count int) ([]recommend.ScoredCandidate, error) {
	ctx, span := tracer.Start(ctx, "engine.Recommend")
	defer span.End()

	ranked, _, err := e.rank(ctx, userID, pool)
	if err != nil {
		return nil, err
	}
	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	span.SetAttributes(
		attribute.Int("recommend.pool", len(pool)),
		attribute.Int("recommend.results", len(ranked)),
	)
	return ranked, nil
}

// BuildLearningPath ranks the pool and assembles the top count candidates
// into an ordered path with adaptive notes.
func (e *Engine) BuildLearningPath(ctx context.Context, userID string, pool []recommend.CandidateItem, count int) (learningpath.LearningPath, error) {
	ctx, span := tracer.Start(ctx, "engine.BuildLearningPath")
	defer span.End()

	ranked, prof, err := e.rank(ctx, userID, pool)
	if err != nil {
		return learningpath.LearningPath{}, err
	}
	return learningpath.Assemble(prof, ranked, count), nil
}

// RecommendFromPool is Recommend over a pool provider.
func (e *Engine) RecommendFromPool(ctx context.Context, userID string, pools CandidatePoolProvider, count int) ([]recommend.ScoredCandidate, error) {
	pool, err := pools.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing candidate pool: %w", err)
	}
	return e.Recommend(ctx, userID, pool, count)
}

// PathFromPool is BuildLearningPath over a pool provider.
func (e *Engine) PathFromPool(ctx context.Context, userID string, pools CandidatePoolProvider, count int) (learningpath.LearningPath, error) {
	pool, err := pools.List(ctx)
	if err != nil {
		return learningpath.LearningPath{}, fmt.Errorf("listing candidate pool: %w", err)
	}
	return e.BuildLearningPath(ctx, userID, pool, count)
}

// rank loads the user's history once and scores the whole pool with it.
func (e *Engine) rank(ctx context.Context, userID string, pool []recommend.CandidateItem) ([]recommend.ScoredCandidate, profile.UserContextProfile, error) {
	records, err := e.loadHistory(ctx, userID)
	if err != nil {
		return nil, profile.UserContextProfile{}, err
	}
	prof := profile.Build(records)
	if len(pool) == 0 {
		return nil, prof, nil
	}

	feedback := feedbackSignals(records)
	scored := make([]recommend.ScoredCandidate, 0, len(pool))
	for _, candidate := range pool {
		score, reason := e.scorer.Score(prof, candidate, feedback)
		scored = append(scored, recommend.ScoredCandidate{
			Candidate:  candidate,
			MatchScore: score,
			Reason:     reason,
		})
	}
	return recommend.Rank(scored), prof, nil
}

func (e *Engine) loadHistory(ctx context.Context, userID string) ([]contextstore.Record, error) {
	if userID == "" {
		return nil, contextstore.ErrEmptyUserID
	}
	records, err := e.adapter.QueryByUser(ctx, userID, contextstore.Filter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	return records, nil
}

// feedbackSignals extracts scorer feedback from highly rated records.
func feedbackSignals(records []contextstore.Record) []recommend.FeedbackSignal {
	var signals []recommend.FeedbackSignal
	for _, rec := range records {
		rating, ok := rec.MetaFloat("rating")
		if !ok || rating < minRatingForFeedback {
			continue
		}
		signals = append(signals, recommend.FeedbackSignal{
			Rating:   rating,
			Keywords: rec.Keywords,
		})
	}
	return signals
}
