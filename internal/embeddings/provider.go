// Package embeddings provides embedding generation for context records and
// retrieval queries via a remote HTTP provider.
//
// The provider is always optional: a nil Provider means "not configured",
// and any transport failure is reported as ErrUnavailable so callers can
// degrade to their non-vector paths. Nothing in this package is ever a hard
// failure for the personalization core.
package embeddings

import (
	"context"
	"errors"
)

var (
	// ErrEmptyInput indicates empty or nil input texts.
	ErrEmptyInput = errors.New("empty or nil input texts")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnavailable indicates the provider could not produce embeddings
	// (timeout, network error, quota, non-OK response). Callers check it
	// with errors.Is and fall back to keyword paths.
	ErrUnavailable = errors.New("embedding provider unavailable")
)

// Provider generates vector embeddings from text.
//
// Embeddings are dense numerical representations that capture semantic
// meaning, enabling similarity search. Implementations must honor context
// cancellation; blocking beyond the configured timeout is not permitted.
type Provider interface {
	// EmbedDocuments generates embeddings for multiple texts, one vector
	// per input.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query. Some models
	// optimize differently for queries vs documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
