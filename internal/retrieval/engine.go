package retrieval

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/similarity"
)

var tracer = otel.Tracer("personalization.retrieval")

const instrumentationName = "github.com/skillpathlabs/personalization/internal/retrieval"

// Engine retrieves a user's most relevant context records.
//
// The engine is stateless across calls. When an embedding provider is
// configured it attempts vector mode first; any provider failure degrades
// that single call to keyword mode, logged but never surfaced. Persistence
// failures always propagate.
type Engine struct {
	adapter contextstore.PersistenceAdapter
	vector  *VectorStrategy // nil when no provider configured
	keyword KeywordStrategy
	logger  *zap.Logger
	modes   metric.Int64Counter
}

// NewEngine creates an Engine. provider and searcher may be nil; without a
// provider every retrieval uses keyword mode.
func NewEngine(adapter contextstore.PersistenceAdapter, provider embeddings.Provider, searcher similarity.Searcher, logger *zap.Logger) (*Engine, error) {
	if adapter == nil {
		return nil, fmt.Errorf("retrieval: adapter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{adapter: adapter, logger: logger}

	if provider != nil {
		vs, err := NewVectorStrategy(provider, searcher)
		if err != nil {
			return nil, err
		}
		e.vector = vs
	}

	modes, err := otel.Meter(instrumentationName).Int64Counter(
		"personalization.retrieval.mode_total",
		metric.WithDescription("Retrieval calls by effective mode and whether vector mode fell back"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		logger.Warn("failed to create mode counter", zap.Error(err))
	} else {
		e.modes = modes
	}

	return e, nil
}

// Retrieve returns up to limit of the user's most relevant records.
func (e *Engine) Retrieve(ctx context.Context, userID, query string, limit int) ([]contextstore.Record, error) {
	ctx, span := tracer.Start(ctx, "retrieval.Retrieve")
	defer span.End()

	if userID == "" {
		return nil, contextstore.ErrEmptyUserID
	}

	records, err := e.adapter.QueryByUser(ctx, userID, contextstore.Filter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	mode, fellBack := "keyword", false
	var out []contextstore.Record

	if e.vector != nil {
		out, err = e.vector.Retrieve(ctx, query, records, limit)
		switch {
		case err == nil && len(out) > 0:
			mode = "vector"
		case err == nil:
			// No record carries an embedding, so vector mode has nothing
			// to rank. Keyword mode still can.
		default:
			// Degrade this call only; stored data is unaffected.
			fellBack = true
			e.logger.Warn("vector retrieval unavailable, falling back to keyword mode",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	if mode == "keyword" {
		out, err = e.keyword.Retrieve(ctx, query, records, limit)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.String("retrieval.mode", mode),
		attribute.Bool("retrieval.fallback", fellBack),
		attribute.Int("retrieval.results", len(out)),
	)
	if e.modes != nil {
		e.modes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("mode", mode),
			attribute.Bool("fallback", fellBack),
		))
	}
	return out, nil
}
