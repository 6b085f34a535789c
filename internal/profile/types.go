// Package profile derives a user's learning profile from their context
// history.
//
// A profile is a pure projection of stored records: it is rebuilt on every
// request and never persisted, so new interactions are reflected
// immediately and no cache can go stale. An empty history yields the
// cold-start defaults rather than an error.
package profile

import "github.com/skillpathlabs/personalization/internal/semantics"

// DifficultyDelta is the direction the user's recent feedback pushes
// recommended difficulty.
type DifficultyDelta string

const (
	DeltaIncrease DifficultyDelta = "increase"
	DeltaDecrease DifficultyDelta = "decrease"
	DeltaMaintain DifficultyDelta = "maintain"
)

// Engagement captures how the user rates and consumes content.
type Engagement struct {
	// AvgRating is the mean of rating metadata across all records, 0 when
	// no record carries a rating.
	AvgRating float64 `json:"avg_rating"`

	// PreferredLength is the majority length_preference signal, "medium"
	// when absent or tied.
	PreferredLength string `json:"preferred_length"`
}

// UserContextProfile is the derived view of a user consumed by the
// recommendation scorer and learning path assembler.
type UserContextProfile struct {
	ExperienceLevel semantics.SkillLevel `json:"experience_level"`
	Interests       []string             `json:"interests,omitempty"`
	Goals           []string             `json:"goals,omitempty"`
	TechStack       []string             `json:"tech_stack,omitempty"`

	// WeeklyHours is the estimated learning time per week, derived from
	// activity metadata when present.
	WeeklyHours float64 `json:"weekly_hours"`

	PreferredDifficultyDelta DifficultyDelta `json:"preferred_difficulty_delta"`

	// SkillGaps are goals not yet covered by the observed tech stack.
	SkillGaps []string `json:"skill_gaps,omitempty"`

	// RecentFocus holds the dominant keywords of the user's latest records.
	RecentFocus []string `json:"recent_focus,omitempty"`

	Engagement Engagement `json:"engagement"`
}
