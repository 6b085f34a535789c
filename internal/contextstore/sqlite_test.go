package contextstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpathlabs/personalization/internal/semantics"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "context.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := Record{
		ID:         "rec-1",
		UserID:     "user-1",
		Content:    "learning docker deployment",
		Type:       TypeActivity,
		Source:     "activity_tracker",
		Embedding:  []float32{0.25, -0.5, 1},
		Timestamp:  time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		Importance: 0.7,
		Keywords:   []string{"learning", "docker", "deployment"},
		Analysis: semantics.Analysis{
			Sentiment:    semantics.SentimentNeutral,
			SkillLevel:   semantics.SkillBeginner,
			Technologies: []string{"docker"},
			Intentions:   []string{"learning"},
		},
		Metadata: map[string]any{"rating": 4.0, "length_preference": "short"},
	}
	require.NoError(t, store.Append(ctx, rec))

	got, err := store.QueryByUser(ctx, "user-1", Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.Content, got[0].Content)
	assert.Equal(t, rec.Type, got[0].Type)
	assert.Equal(t, rec.Embedding, got[0].Embedding)
	assert.True(t, rec.Timestamp.Equal(got[0].Timestamp))
	assert.InDelta(t, rec.Importance, got[0].Importance, 1e-9)
	assert.Equal(t, rec.Keywords, got[0].Keywords)
	assert.Equal(t, rec.Analysis, got[0].Analysis)

	rating, ok := got[0].MetaFloat("rating")
	require.True(t, ok)
	assert.InDelta(t, 4.0, rating, 1e-9)
	pref, ok := got[0].MetaString("length_preference")
	require.True(t, ok)
	assert.Equal(t, "short", pref)
}

func TestSQLiteStore_NoEmbedding(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Record{
		ID:        "rec-1",
		UserID:    "user-1",
		Type:      TypeChat,
		Timestamp: time.Now().UTC(),
		Keywords:  []string{},
	}))

	got, err := store.QueryByUser(ctx, "user-1", Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Embedding)
	assert.Nil(t, got[0].Metadata)
}

func TestSQLiteStore_FilterAndLimit(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	types := []RecordType{TypeChat, TypeActivity, TypeActivity, TypeProject, TypeActivity}
	for i, typ := range types {
		require.NoError(t, store.Append(ctx, Record{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			Type:      typ,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Keywords:  []string{},
		}))
	}

	activities, err := store.QueryByUser(ctx, "user-1", Filter{Types: []RecordType{TypeActivity}}, 0)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	recent, err := store.QueryByUser(ctx, "user-1", Filter{Types: []RecordType{TypeActivity}}, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID, "limited query keeps the most recent, ascending")
	assert.Equal(t, "e", recent[1].ID)

	since, err := store.QueryByUser(ctx, "user-1", Filter{Since: base.Add(3 * time.Minute)}, 0)
	require.NoError(t, err)
	require.Len(t, since, 2)

	other, err := store.QueryByUser(ctx, "user-2", Filter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStore_SubSecondOrdering(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	// Same second, one fraction a decimal prefix of the other. A textual
	// timestamp encoding would order these lexicographically and invert
	// them; the numeric column must not.
	earlier := base.Add(500 * time.Millisecond)
	later := base.Add(550 * time.Millisecond)

	require.NoError(t, store.Append(ctx, Record{
		ID: "later", UserID: "user-1", Type: TypeActivity, Timestamp: later, Keywords: []string{},
	}))
	require.NoError(t, store.Append(ctx, Record{
		ID: "earlier", UserID: "user-1", Type: TypeActivity, Timestamp: earlier, Keywords: []string{},
	}))

	got, err := store.QueryByUser(ctx, "user-1", Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "earlier", got[0].ID)
	assert.Equal(t, "later", got[1].ID)
	assert.True(t, earlier.Equal(got[0].Timestamp), "sub-second precision survives the round trip")

	since, err := store.QueryByUser(ctx, "user-1", Filter{Since: base.Add(540 * time.Millisecond)}, 0)
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "later", since[0].ID)

	limited, err := store.QueryByUser(ctx, "user-1", Filter{}, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "later", limited[0].ID, "recency keeps the later same-second record")
}

func TestSQLiteStore_WorksAsStoreAdapter(t *testing.T) {
	sqlite := newTestSQLiteStore(t)
	store, err := NewStore(sqlite, semantics.NewAnalyzer(semantics.Config{}))
	require.NoError(t, err)

	_, err = store.Append(context.Background(), "user-1", TypeOnboarding, "onboarding_flow",
		"I am new to programming and want to learn python", nil)
	require.NoError(t, err)

	got, err := store.Records(context.Background(), "user-1", Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, semantics.SkillBeginner, got[0].Analysis.SkillLevel)
	assert.Contains(t, got[0].Analysis.Technologies, "python")
}
