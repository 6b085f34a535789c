// Package similarity provides vector similarity primitives for the
// retrieval engine: cosine similarity, a compact binary codec for stored
// embeddings, and a pluggable Searcher so the exhaustive scan can be
// swapped for an approximate-nearest-neighbor index without touching the
// retrieval contract.
package similarity

import (
	"context"
	"encoding/binary"
	"math"
	"sort"
)

// PackFloat32 encodes an embedding vector as a little-endian binary BLOB,
// 4 bytes per float.
func PackFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// UnpackFloat32 reconstructs a vector from a packed BLOB. Returns nil if
// the input length is not a multiple of 4.
func UnpackFloat32(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths, empty vectors, or zero norms.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// Candidate is one embedded item eligible for similarity search.
type Candidate struct {
	ID        string
	Embedding []float32
}

// Scored pairs a candidate ID with its similarity score.
type Scored struct {
	ID    string
	Score float64
}

// Searcher ranks candidates against a query vector. Implementations must
// be safe for concurrent use.
type Searcher interface {
	Search(ctx context.Context, query []float32, candidates []Candidate, k int) ([]Scored, error)
}

// BruteForce implements Searcher with an exhaustive cosine scan. This is
// the default; it is O(n) per query and fine at per-user history scale.
type BruteForce struct{}

// Search ranks candidates by cosine similarity descending and returns the
// top k. Candidates with empty or mismatched-dimension embeddings are
// skipped, not scored zero. k <= 0 returns all matches.
func (BruteForce) Search(_ context.Context, query []float32, candidates []Candidate, k int) ([]Scored, error) {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) == 0 || len(c.Embedding) != len(query) {
			continue
		}
		scored = append(scored, Scored{
			ID:    c.ID,
			Score: float64(CosineSimilarity(query, c.Embedding)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
