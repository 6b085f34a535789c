package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpathlabs/personalization/internal/contextstore"
)

func TestNewVectorStrategy_RequiresProvider(t *testing.T) {
	_, err := NewVectorStrategy(nil, nil)
	require.Error(t, err)
}

func TestVectorStrategy_RanksBySimilarity(t *testing.T) {
	vs, err := NewVectorStrategy(&stubProvider{}, nil)
	require.NoError(t, err)

	records := []contextstore.Record{
		withEmbedding(rec("far", nil, 0.5, 0), []float32{0, 1}),
		withEmbedding(rec("near", nil, 0.5, 0), []float32{1, 0}),
		withEmbedding(rec("between", nil, 0.5, 0), []float32{0.7, 0.7}),
	}

	got, err := vs.Retrieve(context.Background(), "x", records, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "between", "far"}, ids(got))
}

func TestVectorStrategy_ExcludesUnembedded(t *testing.T) {
	vs, err := NewVectorStrategy(&stubProvider{}, nil)
	require.NoError(t, err)

	records := []contextstore.Record{
		rec("bare", []string{"react"}, 0.9, 0),
		withEmbedding(rec("embedded", nil, 0.1, 0), []float32{1, 0}),
	}

	got, err := vs.Retrieve(context.Background(), "x", records, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"embedded"}, ids(got))
}

func TestVectorStrategy_ProviderErrorSurfaces(t *testing.T) {
	vs, err := NewVectorStrategy(&stubProvider{broken: true}, nil)
	require.NoError(t, err)

	_, err = vs.Retrieve(context.Background(), "x", nil, 0)
	require.Error(t, err, "the engine, not the strategy, decides on fallback")
}

func TestVectorStrategy_Limit(t *testing.T) {
	vs, err := NewVectorStrategy(&stubProvider{}, nil)
	require.NoError(t, err)

	records := []contextstore.Record{
		withEmbedding(rec("a", nil, 0.5, 0), []float32{1, 0}),
		withEmbedding(rec("b", nil, 0.5, 0), []float32{0.9, 0.1}),
		withEmbedding(rec("c", nil, 0.5, 0), []float32{0, 1}),
	}

	got, err := vs.Retrieve(context.Background(), "x", records, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}
