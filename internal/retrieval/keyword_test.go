package retrieval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpathlabs/personalization/internal/contextstore"
)

func rec(id string, keywords []string, importance float64, minutesAgo int) contextstore.Record {
	return contextstore.Record{
		ID:         id,
		UserID:     "user-1",
		Type:       contextstore.TypeActivity,
		Keywords:   keywords,
		Importance: importance,
		Timestamp:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func ids(records []contextstore.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestKeywordStrategy_RanksByMatches(t *testing.T) {
	records := []contextstore.Record{
		rec("none", []string{"cooking"}, 0.9, 0),
		rec("one", []string{"react"}, 0.5, 0),
		rec("two", []string{"react", "hooks"}, 0.5, 0),
	}

	got, err := KeywordStrategy{}.Retrieve(context.Background(), "react hooks tutorial", records, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one", "none"}, ids(got))
}

func TestKeywordStrategy_TieBreaks(t *testing.T) {
	records := []contextstore.Record{
		rec("older-important", []string{"react"}, 0.9, 60),
		rec("newer-important", []string{"react"}, 0.9, 5),
		rec("less-important", []string{"react"}, 0.4, 0),
	}

	got, err := KeywordStrategy{}.Retrieve(context.Background(), "react", records, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer-important", "older-important", "less-important"}, ids(got),
		"equal matches rank by importance, then recency")
}

func TestKeywordStrategy_MatchesContentToo(t *testing.T) {
	records := []contextstore.Record{
		{ID: "content-match", Content: "spent the evening debugging kubernetes ingress", Importance: 0.5},
		{ID: "no-match", Content: "watched a movie", Importance: 0.5},
	}

	got, err := KeywordStrategy{}.Retrieve(context.Background(), "kubernetes", records, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "content-match", got[0].ID)
}

func TestKeywordStrategy_Limit(t *testing.T) {
	records := []contextstore.Record{
		rec("a", []string{"go"}, 0.5, 0),
		rec("b", []string{"go"}, 0.5, 1),
		rec("c", []string{"go"}, 0.5, 2),
	}

	got, err := KeywordStrategy{}.Retrieve(context.Background(), "golang concurrency", records, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestKeywordStrategy_EmptyRecords(t *testing.T) {
	got, err := KeywordStrategy{}.Retrieve(context.Background(), "anything", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
