// Package learningpath orders top recommendations into a study sequence
// and annotates it with adaptive guidance.
package learningpath

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skillpathlabs/personalization/internal/profile"
	"github.com/skillpathlabs/personalization/internal/recommend"
)

// lowWeeklyHours is the threshold below which the path suggests
// reserving more study time.
const lowWeeklyHours = 5.0

// maxNotedGaps caps the skill gaps named in a note.
const maxNotedGaps = 3

// LearningPath is an ordered study plan over candidate projects.
type LearningPath struct {
	Projects       []recommend.CandidateItem `json:"projects"`
	EstimatedWeeks int                       `json:"estimated_weeks"`
	AdaptiveNotes  []string                  `json:"adaptive_notes,omitempty"`
}

// Assemble builds a path from ranked candidates: the top count items
// reordered easiest first, so the sequence ramps up in difficulty even
// when a harder project scored higher. The stable sort preserves score
// order within a difficulty level.
func Assemble(p profile.UserContextProfile, ranked []recommend.ScoredCandidate, count int) LearningPath {
	if count <= 0 || count > len(ranked) {
		count = len(ranked)
	}

	projects := make([]recommend.CandidateItem, count)
	for i := 0; i < count; i++ {
		projects[i] = ranked[i].Candidate
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Difficulty.Ordinal() < projects[j].Difficulty.Ordinal()
	})

	var totalHours float64
	for _, proj := range projects {
		totalHours += proj.EstimatedHours
	}
	weeklyHours := p.WeeklyHours
	if weeklyHours < 1 {
		weeklyHours = 1
	}

	return LearningPath{
		Projects:       projects,
		EstimatedWeeks: int(math.Ceil(totalHours / weeklyHours)),
		AdaptiveNotes:  adaptiveNotes(p),
	}
}

// adaptiveNotes applies the guidance rules in a fixed order so the same
// profile always yields the same notes.
func adaptiveNotes(p profile.UserContextProfile) []string {
	var notes []string

	if p.WeeklyHours < lowWeeklyHours {
		notes = append(notes, fmt.Sprintf(
			"You currently have about %.0f hours per week; consider reserving more study time to keep momentum.",
			p.WeeklyHours))
	}
	if p.PreferredDifficultyDelta == profile.DeltaIncrease {
		notes = append(notes,
			"Recent feedback suggests the material has felt too easy; this path leans toward more challenging projects.")
	}
	if len(p.SkillGaps) > 0 {
		gaps := p.SkillGaps
		if len(gaps) > maxNotedGaps {
			gaps = gaps[:maxNotedGaps]
		}
		notes = append(notes, fmt.Sprintf(
			"Focus areas to close your stated goals: %s.", strings.Join(gaps, ", ")))
	}
	return notes
}
