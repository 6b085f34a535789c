package semantics

import (
	"strings"
)

// Importance score constants. These are empirical tuning values; see the
// package documentation.
const (
	// ImportanceBase is the starting importance for every text.
	ImportanceBase = 0.5

	// Per-event-type importance bonuses.
	BonusOnboarding = 0.3
	BonusProject    = 0.2
	BonusActivity   = 0.1

	// BonusContentSignal is added once per content signal group present
	// (goal language, struggle language, enthusiasm language).
	BonusContentSignal = 0.1
)

// Config holds the lexicons and bonuses for an Analyzer. Zero-valued fields
// fall back to the defaults, so callers only override what they tune.
type Config struct {
	PositiveWords          []string
	NegativeWords          []string
	AdvancedIndicators     []string
	IntermediateIndicators []string
	BeginnerIndicators     []string
	Technologies           []string

	// TypeBonus maps an event type to its importance bonus. Unlisted
	// types contribute nothing.
	TypeBonus map[EventType]float64

	// SignalBonus is the per-content-signal importance increment.
	SignalBonus float64
}

// DefaultConfig returns the tuned default configuration.
func DefaultConfig() Config {
	return Config{
		PositiveWords:          defaultPositiveWords,
		NegativeWords:          defaultNegativeWords,
		AdvancedIndicators:     defaultAdvancedIndicators,
		IntermediateIndicators: defaultIntermediateIndicators,
		BeginnerIndicators:     defaultBeginnerIndicators,
		Technologies:           defaultTechnologies,
		TypeBonus: map[EventType]float64{
			EventOnboarding: BonusOnboarding,
			EventProject:    BonusProject,
			EventActivity:   BonusActivity,
		},
		SignalBonus: BonusContentSignal,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if len(c.PositiveWords) == 0 {
		c.PositiveWords = d.PositiveWords
	}
	if len(c.NegativeWords) == 0 {
		c.NegativeWords = d.NegativeWords
	}
	if len(c.AdvancedIndicators) == 0 {
		c.AdvancedIndicators = d.AdvancedIndicators
	}
	if len(c.IntermediateIndicators) == 0 {
		c.IntermediateIndicators = d.IntermediateIndicators
	}
	if len(c.BeginnerIndicators) == 0 {
		c.BeginnerIndicators = d.BeginnerIndicators
	}
	if len(c.Technologies) == 0 {
		c.Technologies = d.Technologies
	}
	if c.TypeBonus == nil {
		c.TypeBonus = d.TypeBonus
	}
	if c.SignalBonus == 0 {
		c.SignalBonus = d.SignalBonus
	}
}

// Analyzer performs heuristic semantic analysis. It is immutable after
// construction and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer from cfg, filling unset fields with
// defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	cfg.applyDefaults()
	return &Analyzer{cfg: cfg}
}

// Analyze extracts the semantic features of text. Empty or whitespace-only
// text yields a neutral analysis with unknown skill level and empty sets.
func (a *Analyzer) Analyze(text string, eventType EventType) Analysis {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Analysis{Sentiment: SentimentNeutral, SkillLevel: SkillUnknown}
	}

	return Analysis{
		Sentiment:       a.sentiment(lower),
		EmotionalTone:   matchGroups(lower, defaultToneGroups),
		SkillLevel:      a.skillLevel(lower),
		Technologies:    matchAll(lower, a.cfg.Technologies),
		Intentions:      matchGroups(lower, defaultIntentionGroups),
		TimeConstraints: matchAll(lower, defaultTimeConstraints),
		LearningStyle:   firstGroup(lower, defaultLearningStyles),
	}
}

// Importance scores how salient a text is for profile building, in [0,1].
// Empty text scores exactly the base value.
func (a *Analyzer) Importance(text string, eventType EventType) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ImportanceBase
	}

	score := ImportanceBase + a.cfg.TypeBonus[eventType]
	for _, signals := range [][]string{defaultGoalSignals, defaultStruggleSignals, defaultEnthusiasmSignals} {
		if containsAny(lower, signals) {
			score += a.cfg.SignalBonus
		}
	}

	return clamp01(score)
}

// sentiment counts lexicon hits; a strict majority wins, a tie is neutral.
func (a *Analyzer) sentiment(lower string) Sentiment {
	pos := countMatches(lower, a.cfg.PositiveWords)
	neg := countMatches(lower, a.cfg.NegativeWords)
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// skillLevel checks indicator categories in priority order; advanced wins
// even when beginner terms also appear.
func (a *Analyzer) skillLevel(lower string) SkillLevel {
	switch {
	case containsAny(lower, a.cfg.AdvancedIndicators):
		return SkillAdvanced
	case containsAny(lower, a.cfg.IntermediateIndicators):
		return SkillIntermediate
	case containsAny(lower, a.cfg.BeginnerIndicators):
		return SkillBeginner
	default:
		return SkillUnknown
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func countMatches(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// matchAll returns every vocabulary entry found in the text, in vocabulary
// order for determinism.
func matchAll(lower string, vocab []string) []string {
	var out []string
	for _, v := range vocab {
		if strings.Contains(lower, v) {
			out = append(out, v)
		}
	}
	return out
}

func matchGroups(lower string, groups []struct {
	Name     string
	Triggers []string
}) []string {
	var out []string
	for _, g := range groups {
		if containsAny(lower, g.Triggers) {
			out = append(out, g.Name)
		}
	}
	return out
}

func firstGroup(lower string, groups []struct {
	Name     string
	Triggers []string
}) string {
	for _, g := range groups {
		if containsAny(lower, g.Triggers) {
			return g.Name
		}
	}
	return ""
}
