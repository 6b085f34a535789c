package contextstore

import (
	"context"
	"errors"
	"time"

	"github.com/skillpathlabs/personalization/internal/semantics"
)

// Sentinel errors for context store operations.
var (
	// ErrEmptyUserID is returned when a user ID is missing.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrInvalidRecordType is returned for unrecognized record types.
	ErrInvalidRecordType = errors.New("invalid record type")

	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
)

// RecordType classifies the upstream interaction that produced a record.
type RecordType string

const (
	TypeOnboarding RecordType = "onboarding_response"
	TypeActivity   RecordType = "activity"
	TypeProject    RecordType = "project_interaction"
	TypeChat       RecordType = "chat_message"
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	switch t {
	case TypeOnboarding, TypeActivity, TypeProject, TypeChat:
		return true
	}
	return false
}

// recordTypes lists all types in a fixed iteration order.
var recordTypes = []RecordType{TypeOnboarding, TypeActivity, TypeProject, TypeChat}

// Record is one immutable stored unit of user interaction plus its derived
// semantic features. Records are value objects after creation; nothing in
// this module mutates a stored record.
type Record struct {
	ID      string     `json:"id"`
	UserID  string     `json:"user_id"`
	Content string     `json:"content"`
	Type    RecordType `json:"type"`

	// Source names the upstream producer (e.g. "onboarding_flow",
	// "activity_tracker", "chat_widget").
	Source string `json:"source"`

	// Embedding is the content vector, nil when no provider was available
	// at write time. A nil embedding excludes the record from vector-mode
	// retrieval; it is not compared at similarity zero.
	Embedding []float32 `json:"embedding,omitempty"`

	Timestamp  time.Time          `json:"timestamp"`
	Importance float64            `json:"importance"`
	Keywords   []string           `json:"keywords,omitempty"`
	Analysis   semantics.Analysis `json:"semantic_analysis"`

	// Metadata carries optional structured signals from upstream.
	// Recognized keys: "rating" (1..5), "difficulty_feedback"
	// ("too_easy"|"just_right"|"too_hard"), "weekly_activity_count",
	// "length_preference" ("short"|"medium"|"long").
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MetaFloat reads a numeric metadata value, tolerating the numeric types
// that survive JSON round-trips.
func (r Record) MetaFloat(key string) (float64, bool) {
	switch v := r.Metadata[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// MetaString reads a string metadata value.
func (r Record) MetaString(key string) (string, bool) {
	if v, ok := r.Metadata[key].(string); ok {
		return v, true
	}
	return "", false
}

// Filter narrows a user query. Zero values match everything.
type Filter struct {
	Types []RecordType
	Since time.Time
}

func (f Filter) matches(r Record) bool {
	if !f.Since.IsZero() && r.Timestamp.Before(f.Since) {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if r.Type == t {
			return true
		}
	}
	return false
}

// PersistenceAdapter is the abstracted document log. Any durable store
// qualifies; implementations must support independent concurrent appends.
type PersistenceAdapter interface {
	// Append stores a record. It never overwrites an existing one.
	Append(ctx context.Context, record Record) error

	// QueryByUser returns a user's records matching the filter, ordered by
	// timestamp ascending. A positive limit returns only the most recent
	// limit records (still ascending); limit <= 0 returns all.
	QueryByUser(ctx context.Context, userID string, f Filter, limit int) ([]Record, error)
}
