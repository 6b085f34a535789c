package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpathlabs/personalization/internal/contextstore"
)

// Both implementations are used through the interface so a signature
// drift in either one fails here, not just at the engine call sites.
func TestStrategies_Interchangeable(t *testing.T) {
	vs, err := NewVectorStrategy(&stubProvider{}, nil)
	require.NoError(t, err)

	records := []contextstore.Record{
		withEmbedding(rec("embedded", []string{"react"}, 0.5, 0), []float32{1, 0}),
	}

	strategies := []Strategy{KeywordStrategy{}, vs}
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		got, err := s.Retrieve(context.Background(), "react", records, 1)
		require.NoError(t, err, s.Name())
		assert.Len(t, got, 1, s.Name())
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"keyword", "vector"}, names)
}
