package semantics

// Sentiment is the overall polarity of a piece of text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SkillLevel is the experience level inferred from text.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillUnknown      SkillLevel = "unknown"
)

// EventType classifies the upstream interaction that produced a text.
// The values match the record types used by the context store.
type EventType string

const (
	EventOnboarding EventType = "onboarding_response"
	EventActivity   EventType = "activity"
	EventProject    EventType = "project_interaction"
	EventChat       EventType = "chat_message"
)

// Analysis is the structured semantic view of one piece of text.
//
// Slices are always sorted or in fixed lexicon order so that identical
// inputs produce deeply equal analyses.
type Analysis struct {
	Sentiment       Sentiment  `json:"sentiment"`
	EmotionalTone   []string   `json:"emotional_tone,omitempty"`
	SkillLevel      SkillLevel `json:"skill_level"`
	Technologies    []string   `json:"technologies,omitempty"`
	Intentions      []string   `json:"intentions,omitempty"`
	TimeConstraints []string   `json:"time_constraints,omitempty"`
	LearningStyle   string     `json:"learning_style,omitempty"`
}
