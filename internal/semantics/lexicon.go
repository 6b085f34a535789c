package semantics

// Default lexicons for the heuristic analyzer. All matching is
// case-insensitive substring matching against lowercased text.

// defaultPositiveWords indicate positive sentiment.
var defaultPositiveWords = []string{
	"love", "like", "enjoy", "great", "awesome", "excited", "happy",
	"good", "amazing", "fantastic", "excellent", "fun", "interesting",
	"helpful", "thanks", "thank you", "cool", "nice",
}

// defaultNegativeWords indicate negative sentiment.
var defaultNegativeWords = []string{
	"hate", "dislike", "frustrated", "confused", "stuck", "difficult",
	"hard", "boring", "annoying", "terrible", "awful", "bad", "worse",
	"struggle", "struggling", "lost", "overwhelmed", "giving up",
}

// Skill indicators are checked in priority order: advanced first, then
// intermediate, then beginner. The first category with any match wins.
var (
	defaultAdvancedIndicators = []string{
		"advanced", "expert", "senior", "architect", "years of experience",
		"production", "scalable", "microservices", "distributed systems",
		"optimization", "profiling", "lead",
	}
	defaultIntermediateIndicators = []string{
		"intermediate", "some experience", "familiar with", "comfortable",
		"worked with", "built a few", "used before", "mid-level",
	}
	defaultBeginnerIndicators = []string{
		"beginner", "new to", "just started", "learning", "first time",
		"basics", "newbie", "no experience", "never used", "getting started",
	}
)

// defaultTechnologies is the fixed vocabulary of recognized technologies.
// All substring matches are returned, not just the first.
var defaultTechnologies = []string{
	"javascript", "typescript", "python", "java", "golang", "rust", "c++",
	"c#", "ruby", "php", "swift", "kotlin",
	"react", "vue", "angular", "svelte", "next.js", "node.js", "express",
	"django", "flask", "spring", "rails",
	"html", "css", "tailwind", "sass",
	"sql", "postgresql", "mysql", "mongodb", "redis", "graphql",
	"docker", "kubernetes", "aws", "gcp", "azure", "terraform",
	"git", "linux", "machine learning", "data science", "api",
}

// defaultIntentionGroups maps an intention to its trigger words. Each
// intention is included when any trigger appears; a text can carry zero,
// one, or many intentions.
var defaultIntentionGroups = []struct {
	Name     string
	Triggers []string
}{
	{"learning", []string{"learn", "study", "understand", "master", "practice", "course", "tutorial"}},
	{"building", []string{"build", "create", "make", "develop", "launch", "ship", "startup", "project idea", "prototype"}},
	{"career", []string{"job", "career", "interview", "hire", "salary", "promotion", "resume", "portfolio"}},
	{"improvement", []string{"improve", "better", "level up", "upgrade", "refine", "polish", "strengthen"}},
}

// defaultToneGroups maps an emotional tone tag to its trigger words.
var defaultToneGroups = []struct {
	Name     string
	Triggers []string
}{
	{"excited", []string{"excited", "can't wait", "thrilled", "pumped", "eager"}},
	{"frustrated", []string{"frustrated", "stuck", "annoying", "giving up", "fed up"}},
	{"curious", []string{"curious", "wonder", "how does", "why does", "what if"}},
	{"confident", []string{"confident", "i can", "no problem", "easy for me", "i know"}},
}

// defaultTimeConstraints are phrases signalling limited or scheduled time.
var defaultTimeConstraints = []string{
	"weekend", "weekends", "evening", "evenings", "after work", "busy",
	"limited time", "deadline", "part-time", "full-time", "hours per week",
	"hours a week",
}

// defaultLearningStyles maps a learning style to its triggers. The first
// style with a match wins; no match leaves the style empty.
var defaultLearningStyles = []struct {
	Name     string
	Triggers []string
}{
	{"hands_on", []string{"hands-on", "hands on", "by doing", "practice", "build things", "trial and error"}},
	{"visual", []string{"video", "videos", "visual", "diagram", "watch"}},
	{"reading", []string{"read", "reading", "documentation", "books", "articles"}},
}

// Importance content signals. Each group present in the text adds the
// configured signal bonus to the importance score.
var (
	defaultGoalSignals = []string{
		"goal", "want to", "need to", "plan to", "aim", "hope to", "my dream",
	}
	defaultStruggleSignals = []string{
		"difficult", "hard", "struggle", "struggling", "stuck", "confused",
		"can't figure", "don't understand",
	}
	defaultEnthusiasmSignals = []string{
		"excited", "love", "can't wait", "really enjoy", "passionate",
		"thrilled",
	}
)
