package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skillpathlabs/personalization/internal/profile"
	"github.com/skillpathlabs/personalization/internal/semantics"
)

// Weights are the per-term multipliers of the match score. Each term is a
// ratio in [0,1], so a weight is also that term's maximum contribution.
type Weights struct {
	Interest   float64 `koanf:"interest" json:"interest"`
	SkillLevel float64 `koanf:"skill_level" json:"skill_level"`
	TechStack  float64 `koanf:"tech_stack" json:"tech_stack"`
	Goals      float64 `koanf:"goals" json:"goals"`
	Feedback   float64 `koanf:"feedback" json:"feedback"`
}

// DefaultWeights returns the standard 30/25/20/15/10 split.
func DefaultWeights() Weights {
	return Weights{Interest: 30, SkillLevel: 25, TechStack: 20, Goals: 15, Feedback: 10}
}

// skillLevelPenalty reduces proximity per level of distance between the
// user's experience and the candidate's difficulty.
const skillLevelPenalty = 0.3

// minRatingForBoost is the rating threshold for a feedback signal to count.
const minRatingForBoost = 4.0

// difficultyFitThreshold is the proximity above which the explanation may
// claim the difficulty suits the user (at most one level apart).
const difficultyFitThreshold = 0.7

// Scorer scores candidates against a profile. The zero value is not
// usable; construct with NewScorer.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer. Zero-valued weights fall back to the
// defaults so a partially populated config cannot silently null a term.
func NewScorer(w Weights) *Scorer {
	def := DefaultWeights()
	if w.Interest == 0 {
		w.Interest = def.Interest
	}
	if w.SkillLevel == 0 {
		w.SkillLevel = def.SkillLevel
	}
	if w.TechStack == 0 {
		w.TechStack = def.TechStack
	}
	if w.Goals == 0 {
		w.Goals = def.Goals
	}
	if w.Feedback == 0 {
		w.Feedback = def.Feedback
	}
	return &Scorer{weights: w}
}

// Score computes the weighted match score in [0,100] and its explanation.
func (s *Scorer) Score(p profile.UserContextProfile, c CandidateItem, feedback []FeedbackSignal) (float64, string) {
	interest := overlapRatio(c.Skills, p.Interests)
	proximity := skillLevelProximity(p.ExperienceLevel, c.Difficulty)
	tech := overlapRatio(c.Technologies, p.TechStack)
	goals := goalAlignmentRatio(p.Goals, c.LearningOutcomes)
	boost := feedbackBoost(feedback, c.Skills)

	score := s.weights.Interest*interest +
		s.weights.SkillLevel*proximity +
		s.weights.TechStack*tech +
		s.weights.Goals*goals +
		s.weights.Feedback*boost

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, buildReason(p, c, interest, proximity)
}

// Rank sorts scored candidates best first: match score descending, ties
// broken by lower estimated hours. The slice is sorted in place and
// returned for convenience.
func Rank(scored []ScoredCandidate) []ScoredCandidate {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].Candidate.EstimatedHours < scored[j].Candidate.EstimatedHours
	})
	return scored
}

// experienceOrdinal maps profile experience onto the 1..4 difficulty
// scale. Unknown is treated as beginner, matching the profile default.
func experienceOrdinal(level semantics.SkillLevel) int {
	switch level {
	case semantics.SkillIntermediate:
		return 2
	case semantics.SkillAdvanced:
		return 3
	}
	return 1
}

func skillLevelProximity(level semantics.SkillLevel, d Difficulty) float64 {
	distance := math.Abs(float64(experienceOrdinal(level) - d.Ordinal()))
	proximity := 1 - skillLevelPenalty*distance
	if proximity < 0 {
		return 0
	}
	return proximity
}

// overlapRatio is |candidate ∩ user| / |candidate|, 0 when the candidate
// set is empty. Matching normalizes case and word separators.
func overlapRatio(candidate, user []string) float64 {
	if len(candidate) == 0 {
		return 0
	}
	userSet := make(map[string]struct{}, len(user))
	for _, v := range user {
		userSet[normalizeTerm(v)] = struct{}{}
	}
	matched := 0
	for _, v := range candidate {
		if _, ok := userSet[normalizeTerm(v)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(candidate))
}

func goalAlignmentRatio(goals, outcomes []string) float64 {
	if len(goals) == 0 {
		return 0
	}
	normalized := make([]string, len(outcomes))
	for i, o := range outcomes {
		normalized[i] = normalizeTerm(o)
	}

	aligned := 0
	for _, g := range goals {
		ng := normalizeTerm(g)
		for _, o := range normalized {
			if strings.Contains(o, ng) {
				aligned++
				break
			}
		}
	}
	return float64(aligned) / float64(len(goals))
}

func feedbackBoost(feedback []FeedbackSignal, skills []string) float64 {
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[normalizeTerm(s)] = struct{}{}
	}
	for _, fb := range feedback {
		if fb.Rating < minRatingForBoost {
			continue
		}
		for _, kw := range fb.Keywords {
			if _, ok := skillSet[normalizeTerm(kw)]; ok {
				return 1
			}
		}
	}
	return 0
}

// normalizeTerm lowercases and unifies word separators so that
// "State Management", "state_management" and "state-management" compare
// equal.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// buildReason names each contributor that moved the score: interest
// match, skill-gap bridging, and difficulty fit. When none apply it
// falls back to a generic sentence rather than an empty reason.
func buildReason(p profile.UserContextProfile, c CandidateItem, interest, proximity float64) string {
	var parts []string

	if interest > 0 {
		parts = append(parts, "matches your interests")
	}
	if bridged := bridgedGaps(p.SkillGaps, c); len(bridged) > 0 {
		parts = append(parts, fmt.Sprintf("helps close your %s skill gap", strings.Join(bridged, ", ")))
	}
	if proximity >= difficultyFitThreshold {
		parts = append(parts, fmt.Sprintf("suits your %s experience level", p.ExperienceLevel))
	}

	if len(parts) == 0 {
		return "Broadens your experience beyond your current focus areas."
	}

	reason := strings.Join(parts, " and ")
	return "This project " + reason + "."
}

// bridgedGaps returns the profile skill gaps this candidate teaches,
// capped at three for readability.
func bridgedGaps(gaps []string, c CandidateItem) []string {
	taught := make(map[string]struct{}, len(c.Skills)+len(c.LearningOutcomes))
	for _, s := range c.Skills {
		taught[normalizeTerm(s)] = struct{}{}
	}
	for _, o := range c.LearningOutcomes {
		taught[normalizeTerm(o)] = struct{}{}
	}

	var bridged []string
	for _, g := range gaps {
		if _, ok := taught[normalizeTerm(g)]; ok {
			bridged = append(bridged, g)
			if len(bridged) == 3 {
				break
			}
		}
	}
	return bridged
}
