package semantics

import (
	"reflect"
	"testing"
)

func TestAnalyzer_Sentiment(t *testing.T) {
	a := NewAnalyzer(Config{})

	tests := []struct {
		name string
		text string
		want Sentiment
	}{
		{"positive", "I love building things, this is great", SentimentPositive},
		{"negative", "I'm stuck and frustrated, this is terrible", SentimentNegative},
		{"tie is neutral", "I love it but I hate it", SentimentNeutral},
		{"no lexicon hits", "the function returns a pointer", SentimentNeutral},
		{"empty", "", SentimentNeutral},
		{"whitespace only", "   \t\n", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text, EventChat)
			if got.Sentiment != tt.want {
				t.Errorf("Sentiment = %q, want %q", got.Sentiment, tt.want)
			}
		})
	}
}

func TestAnalyzer_SkillLevel(t *testing.T) {
	a := NewAnalyzer(Config{})

	tests := []struct {
		name string
		text string
		want SkillLevel
	}{
		{"advanced", "I run production microservices", SkillAdvanced},
		{"intermediate", "I'm comfortable with the basics of Go", SkillIntermediate},
		{"beginner", "just started programming", SkillBeginner},
		{"advanced wins over beginner", "advanced developer, new to Rust", SkillAdvanced},
		{"unknown", "hello world", SkillUnknown},
		{"empty", "", SkillUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text, EventChat)
			if got.SkillLevel != tt.want {
				t.Errorf("SkillLevel = %q, want %q", got.SkillLevel, tt.want)
			}
		})
	}
}

// Mirrors the onboarding sentence used in the product walkthrough.
func TestAnalyzer_AdvancedDeveloperSentence(t *testing.T) {
	a := NewAnalyzer(Config{})
	got := a.Analyze("I am an advanced developer familiar with React and Node.js, excited to build a startup", EventOnboarding)

	if got.SkillLevel != SkillAdvanced {
		t.Errorf("SkillLevel = %q, want advanced", got.SkillLevel)
	}
	if got.Sentiment != SentimentPositive {
		t.Errorf("Sentiment = %q, want positive", got.Sentiment)
	}
	for _, tech := range []string{"react", "node.js"} {
		if !contains(got.Technologies, tech) {
			t.Errorf("Technologies = %v, missing %q", got.Technologies, tech)
		}
	}
	if !contains(got.Intentions, "building") {
		t.Errorf("Intentions = %v, missing building", got.Intentions)
	}
}

func TestAnalyzer_Intentions(t *testing.T) {
	a := NewAnalyzer(Config{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"multiple groups", "I want to learn React to get a job and build a portfolio", []string{"learning", "building", "career"}},
		{"none", "the weather is fine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text, EventChat)
			if !reflect.DeepEqual(got.Intentions, tt.want) {
				t.Errorf("Intentions = %v, want %v", got.Intentions, tt.want)
			}
		})
	}
}

func TestAnalyzer_Importance(t *testing.T) {
	a := NewAnalyzer(Config{})

	tests := []struct {
		name      string
		text      string
		eventType EventType
		want      float64
	}{
		{"empty is exactly base", "", EventOnboarding, 0.5},
		{"plain chat", "the code compiles", EventChat, 0.5},
		{"onboarding bonus", "the code compiles", EventOnboarding, 0.8},
		{"activity bonus", "the code compiles", EventActivity, 0.6},
		{"project bonus", "the code compiles", EventProject, 0.7},
		{"goal signal", "my goal is a compiler", EventChat, 0.6},
		{"clipped at one", "my goal: excited but struggling", EventOnboarding, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Importance(tt.text, tt.eventType)
			if !almostEqual(got, tt.want) {
				t.Errorf("Importance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzer_ImportanceBounds(t *testing.T) {
	a := NewAnalyzer(Config{})
	texts := []string{
		"", "goal excited struggling love hard want to",
		"plain text", "I love this so much, my goal is everything",
	}
	for _, text := range texts {
		for _, et := range []EventType{EventOnboarding, EventActivity, EventProject, EventChat} {
			got := a.Importance(text, et)
			if got < 0 || got > 1 {
				t.Errorf("Importance(%q, %q) = %v, out of [0,1]", text, et, got)
			}
		}
	}
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := NewAnalyzer(Config{})
	text := "I'm excited to learn Docker and Kubernetes, but deployment is hard"

	first := a.Analyze(text, EventActivity)
	second := a.Analyze(text, EventActivity)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzer_ConfigOverride(t *testing.T) {
	a := NewAnalyzer(Config{PositiveWords: []string{"splendid"}})

	if got := a.Analyze("splendid", EventChat).Sentiment; got != SentimentPositive {
		t.Errorf("Sentiment = %q, want positive with overridden lexicon", got)
	}
	// Default positives are replaced, not merged.
	if got := a.Analyze("love it", EventChat).Sentiment; got != SentimentNeutral {
		t.Errorf("Sentiment = %q, want neutral with overridden lexicon", got)
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
