package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestService_EmbedDocuments(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embed", r.URL.Path)

		var req struct {
			Inputs []string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		vectors := make([][]float32, len(req.Inputs))
		for i := range vectors {
			vectors[i] = []float32{float32(i), 1}
		}
		require.NoError(t, json.NewEncoder(w).Encode(vectors))
	})

	svc, err := NewService(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	got, err := svc.EmbedDocuments(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{0, 1}, got[0])
	assert.Equal(t, []float32{1, 1}, got[1])
}

func TestService_EmbedQuery(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([][]float32{{0.1, 0.2}}))
	})

	svc, err := NewService(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	got, err := svc.EmbedQuery(context.Background(), "query text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, got)
}

func TestService_ErrorsAreUnavailable(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		svc, err := NewService(Config{BaseURL: srv.URL}, nil)
		require.NoError(t, err)

		_, err = svc.EmbedQuery(context.Background(), "text")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})

		svc, err := NewService(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil)
		require.NoError(t, err)

		_, err = svc.EmbedQuery(context.Background(), "text")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		svc, err := NewService(Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond}, nil)
		require.NoError(t, err)

		_, err = svc.EmbedQuery(context.Background(), "text")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestService_EmptyInput(t *testing.T) {
	svc, err := NewService(Config{BaseURL: "http://localhost:8080"}, nil)
	require.NoError(t, err)

	_, err = svc.EmbedDocuments(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = svc.EmbedQuery(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestService_CountMismatch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([][]float32{{1}}))
	})

	svc, err := NewService(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = svc.EmbedDocuments(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewService_InvalidConfig(t *testing.T) {
	_, err := NewService(Config{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
