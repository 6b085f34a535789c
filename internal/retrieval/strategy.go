// Package retrieval returns the stored context records most relevant to a
// query. Two interchangeable strategies implement the ranking: vector mode
// uses embedding cosine similarity, keyword mode falls back to shared
// keyword extraction plus importance and recency.
//
// Mode selection is a per-call decision based on provider availability,
// not a persistent flag: an embedding outage degrades that call to keyword
// ranking and nothing else. A degraded-but-correct result is always
// preferred to no result.
package retrieval

import (
	"context"

	"github.com/skillpathlabs/personalization/internal/contextstore"
)

// Strategy ranks a user's records against a query and returns the top
// limit. Implementations are pure with respect to the record slice and
// safe for concurrent use.
type Strategy interface {
	// Retrieve returns up to limit records, most relevant first.
	Retrieve(ctx context.Context, query string, records []contextstore.Record, limit int) ([]contextstore.Record, error)

	// Name identifies the strategy in logs and metrics.
	Name() string
}

var (
	_ Strategy = KeywordStrategy{}
	_ Strategy = (*VectorStrategy)(nil)
)
