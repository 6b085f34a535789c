package similarity

import (
	"context"
	"errors"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// ChromemIndex implements Searcher on top of chromem-go, an embeddable
// vector database. Each search builds an ephemeral in-memory collection
// from the candidate set and queries it, so the index needs no lifecycle
// management and candidate sets stay per-call like the brute-force scan.
type ChromemIndex struct{}

// errNoEmbedder guards the collection's embedding func: documents always
// arrive with precomputed vectors, so the func must never run.
var errNoEmbedder = errors.New("chromem index: documents must carry embeddings")

// Search ranks candidates by similarity descending and returns the top k.
// Candidates with empty or mismatched-dimension embeddings are skipped.
func (ChromemIndex) Search(ctx context.Context, query []float32, candidates []Candidate, k int) ([]Scored, error) {
	docs := make([]chromem.Document, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) == 0 || len(c.Embedding) != len(query) {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:        c.ID,
			Content:   c.ID, // chromem requires content; only the ID and vector matter here
			Embedding: c.Embedding,
		})
	}
	if len(docs) == 0 {
		return []Scored{}, nil
	}

	db := chromem.NewDB()
	coll, err := db.CreateCollection("candidates", nil, func(_ context.Context, _ string) ([]float32, error) {
		return nil, errNoEmbedder
	})
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	if err := coll.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("indexing candidates: %w", err)
	}

	n := k
	if n <= 0 || n > len(docs) {
		n = len(docs)
	}

	results, err := coll.QueryEmbedding(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	scored := make([]Scored, 0, len(results))
	for _, r := range results {
		scored = append(scored, Scored{ID: r.ID, Score: float64(r.Similarity)})
	}
	return scored, nil
}
