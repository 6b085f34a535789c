// Package recommend scores candidate learning items against a user
// profile with a weighted linear heuristic and explains each score.
//
// The weights and term definitions are empirical tuning knobs, not a
// validated statistical model. They are named on Weights so deployments
// can adjust them without touching the formula.
package recommend

// Difficulty is a candidate item's declared difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Ordinal maps difficulty onto the 1..4 scale shared with experience
// levels. Unknown values map to medium.
func (d Difficulty) Ordinal() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	case DifficultyExpert:
		return 4
	}
	return 2
}

// CandidateItem is one entry of an externally supplied candidate pool.
// This module consumes candidates; it never stores or mutates them.
type CandidateItem struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title,omitempty" yaml:"title,omitempty"`
	Skills           []string   `json:"skills,omitempty" yaml:"skills,omitempty"`
	Technologies     []string   `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty"`
	EstimatedHours   float64    `json:"estimated_hours" yaml:"estimated_hours"`
	LearningOutcomes []string   `json:"learning_outcomes,omitempty" yaml:"learning_outcomes,omitempty"`
	Prerequisites    []string   `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
}

// ScoredCandidate pairs a candidate with its match score and a
// human-readable explanation.
type ScoredCandidate struct {
	Candidate  CandidateItem `json:"candidate"`
	MatchScore float64       `json:"match_score"`
	Reason     string        `json:"reason"`
}

// FeedbackSignal is a prior user rating with the keywords of the rated
// interaction. The scorer uses highly rated signals as a coarse boost;
// keyword overlap can misfire on coincidental matches, which is accepted.
type FeedbackSignal struct {
	Rating   float64
	Keywords []string
}
