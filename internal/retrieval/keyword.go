package retrieval

import (
	"context"
	"sort"
	"strings"

	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/semantics"
)

// maxQueryKeywords caps keywords extracted from a retrieval query.
const maxQueryKeywords = 10

// KeywordStrategy ranks records by query keyword matches, then importance
// descending, then timestamp descending. It needs no external services and
// is the fallback when embeddings are unavailable.
type KeywordStrategy struct{}

// Name implements Strategy.
func (KeywordStrategy) Name() string { return "keyword" }

// Retrieve implements Strategy.
func (KeywordStrategy) Retrieve(_ context.Context, query string, records []contextstore.Record, limit int) ([]contextstore.Record, error) {
	keywords := semantics.ExtractKeywords(query, maxQueryKeywords)

	type rankedRecord struct {
		rec     contextstore.Record
		matches int
	}

	ranked := make([]rankedRecord, 0, len(records))
	for _, rec := range records {
		ranked = append(ranked, rankedRecord{rec: rec, matches: matchCount(rec, keywords)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].matches != ranked[j].matches {
			return ranked[i].matches > ranked[j].matches
		}
		if ranked[i].rec.Importance != ranked[j].rec.Importance {
			return ranked[i].rec.Importance > ranked[j].rec.Importance
		}
		return ranked[i].rec.Timestamp.After(ranked[j].rec.Timestamp)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]contextstore.Record, len(ranked))
	for i, r := range ranked {
		out[i] = r.rec
	}
	return out, nil
}

// matchCount counts query keywords present in the record's keyword set or
// its content.
func matchCount(rec contextstore.Record, keywords []string) int {
	content := strings.ToLower(rec.Content)
	n := 0
	for _, kw := range keywords {
		if containsKeyword(rec.Keywords, kw) || strings.Contains(content, kw) {
			n++
		}
	}
	return n
}

func containsKeyword(keywords []string, kw string) bool {
	for _, k := range keywords {
		if k == kw {
			return true
		}
	}
	return false
}
