// Package semantics turns free-text user interactions into structured
// semantic features: sentiment, emotional tone, inferred skill level,
// mentioned technologies, intentions, time constraints, and a heuristic
// importance score.
//
// The analyzer is a pure function over fixed lexicons. It performs no I/O,
// holds no shared state, and is fully deterministic: calling Analyze twice
// with identical input yields deeply equal results. This keeps every
// downstream scoring decision explainable and unit-testable without a live
// AI service.
//
// Keyword extraction lives here too so that record ingestion, keyword-mode
// retrieval, and context summaries all share one implementation instead of
// drifting copies.
//
// All lexicons and bonus values are carried on Config and can be overridden;
// DefaultConfig returns the tuned defaults. The scoring constants are
// empirical heuristics, not a validated statistical model.
package semantics
