package retrieval

import (
	"context"
	"fmt"

	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/similarity"
)

// VectorStrategy ranks records by cosine similarity between the query
// embedding and each record's stored embedding.
//
// Records without an embedding are excluded from the candidate set
// entirely: a missing vector is not a valid point for comparison, so they
// are never ranked at similarity zero.
type VectorStrategy struct {
	provider embeddings.Provider
	searcher similarity.Searcher
}

// NewVectorStrategy creates a VectorStrategy. A nil searcher defaults to
// the exhaustive cosine scan.
func NewVectorStrategy(provider embeddings.Provider, searcher similarity.Searcher) (*VectorStrategy, error) {
	if provider == nil {
		return nil, fmt.Errorf("retrieval: embedding provider is required for vector mode")
	}
	if searcher == nil {
		searcher = similarity.BruteForce{}
	}
	return &VectorStrategy{provider: provider, searcher: searcher}, nil
}

// Name implements Strategy.
func (*VectorStrategy) Name() string { return "vector" }

// Retrieve implements Strategy. Provider failures are returned to the
// caller; the engine owns the fallback decision.
func (v *VectorStrategy) Retrieve(ctx context.Context, query string, records []contextstore.Record, limit int) ([]contextstore.Record, error) {
	queryVec, err := v.provider.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	byID := make(map[string]contextstore.Record, len(records))
	candidates := make([]similarity.Candidate, 0, len(records))
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			continue
		}
		byID[rec.ID] = rec
		candidates = append(candidates, similarity.Candidate{ID: rec.ID, Embedding: rec.Embedding})
	}

	scored, err := v.searcher.Search(ctx, queryVec, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	out := make([]contextstore.Record, 0, len(scored))
	for _, s := range scored {
		out = append(out, byID[s.ID])
	}
	return out, nil
}
