package profile

import (
	"sort"

	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/semantics"
)

const (
	// DefaultWeeklyHours is assumed when no activity metadata exists.
	DefaultWeeklyHours = 10.0

	// hoursPerActivity converts a weekly activity count into hours.
	hoursPerActivity = 1.5

	minWeeklyHours = 2.0
	maxWeeklyHours = 40.0

	// difficultyWindow is how many trailing difficulty_feedback signals
	// vote on the difficulty delta.
	difficultyWindow = 10

	// recentFocusWindow and recentFocusTop bound the RecentFocus keyword
	// digest.
	recentFocusWindow = 10
	recentFocusTop    = 3
)

// skillRank orders experience levels; unknown never wins.
var skillRank = map[semantics.SkillLevel]int{
	semantics.SkillBeginner:     1,
	semantics.SkillIntermediate: 2,
	semantics.SkillAdvanced:     3,
}

// Build derives a profile from a user's records, expected in timestamp
// ascending order as adapters return them. It is pure: no I/O, no clock.
// An empty history produces the cold-start defaults.
func Build(records []contextstore.Record) UserContextProfile {
	p := UserContextProfile{
		ExperienceLevel:          semantics.SkillBeginner,
		WeeklyHours:              DefaultWeeklyHours,
		PreferredDifficultyDelta: DeltaMaintain,
		Engagement:               Engagement{PreferredLength: "medium"},
	}
	if len(records) == 0 {
		return p
	}

	interests := map[string]struct{}{}
	goals := map[string]struct{}{}
	techStack := map[string]struct{}{}

	var ratingSum float64
	var ratingCount int
	lengthVotes := map[string]int{}

	for _, rec := range records {
		if rank, ok := skillRank[rec.Analysis.SkillLevel]; ok && rank > skillRank[p.ExperienceLevel] {
			p.ExperienceLevel = rec.Analysis.SkillLevel
		}

		for _, tech := range rec.Analysis.Technologies {
			interests[tech] = struct{}{}
		}
		for _, kw := range rec.Keywords {
			interests[kw] = struct{}{}
		}

		switch rec.Type {
		case contextstore.TypeOnboarding, contextstore.TypeChat:
			if len(rec.Analysis.Intentions) > 0 {
				for _, kw := range rec.Keywords {
					goals[kw] = struct{}{}
				}
			}
		case contextstore.TypeActivity, contextstore.TypeProject:
			for _, tech := range rec.Analysis.Technologies {
				techStack[tech] = struct{}{}
			}
		}

		if rating, ok := rec.MetaFloat("rating"); ok {
			ratingSum += rating
			ratingCount++
		}
		if pref, ok := rec.MetaString("length_preference"); ok {
			lengthVotes[pref]++
		}
	}

	p.Interests = sortedSet(interests)
	p.Goals = sortedSet(goals)
	p.TechStack = sortedSet(techStack)
	p.SkillGaps = setDifference(p.Goals, techStack)
	p.WeeklyHours = weeklyHours(records)
	p.PreferredDifficultyDelta = difficultyDelta(records)
	p.RecentFocus = recentFocus(records)

	if ratingCount > 0 {
		p.Engagement.AvgRating = ratingSum / float64(ratingCount)
	}
	if pref := majorityVote(lengthVotes); pref != "" {
		p.Engagement.PreferredLength = pref
	}
	return p
}

// weeklyHours converts the latest weekly_activity_count signal into hours,
// clamped to a plausible range.
func weeklyHours(records []contextstore.Record) float64 {
	for i := len(records) - 1; i >= 0; i-- {
		count, ok := records[i].MetaFloat("weekly_activity_count")
		if !ok {
			continue
		}
		hours := count * hoursPerActivity
		if hours < minWeeklyHours {
			return minWeeklyHours
		}
		if hours > maxWeeklyHours {
			return maxWeeklyHours
		}
		return hours
	}
	return DefaultWeeklyHours
}

// difficultyDelta tallies the trailing difficulty_feedback signals. A
// direction must strictly outnumber each of the others to win.
func difficultyDelta(records []contextstore.Record) DifficultyDelta {
	votes := map[string]int{}
	seen := 0
	for i := len(records) - 1; i >= 0 && seen < difficultyWindow; i-- {
		fb, ok := records[i].MetaString("difficulty_feedback")
		if !ok {
			continue
		}
		votes[fb]++
		seen++
	}

	switch {
	case votes["too_easy"] > votes["just_right"] && votes["too_easy"] > votes["too_hard"]:
		return DeltaIncrease
	case votes["too_hard"] > votes["just_right"] && votes["too_hard"] > votes["too_easy"]:
		return DeltaDecrease
	}
	return DeltaMaintain
}

// recentFocus returns the dominant keywords of the latest records,
// frequency descending with lexicographic tie order.
func recentFocus(records []contextstore.Record) []string {
	start := len(records) - recentFocusWindow
	if start < 0 {
		start = 0
	}

	freq := map[string]int{}
	for _, rec := range records[start:] {
		for _, kw := range rec.Keywords {
			freq[kw]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(freq))
	for kw := range freq {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > recentFocusTop {
		keywords = keywords[:recentFocusTop]
	}
	return keywords
}

// majorityVote returns the strictly most common value, "" on absence or
// ties.
func majorityVote(votes map[string]int) string {
	best, bestCount, tied := "", 0, false
	for value, count := range votes {
		switch {
		case count > bestCount:
			best, bestCount, tied = value, count, false
		case count == bestCount:
			tied = true
		}
	}
	if tied || bestCount == 0 {
		return ""
	}
	return best
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// setDifference keeps the members of sorted not present in exclude.
func setDifference(sorted []string, exclude map[string]struct{}) []string {
	var out []string
	for _, v := range sorted {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
