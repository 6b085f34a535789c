package contextstore

import (
	"context"
	"sort"
	"time"

	"github.com/skillpathlabs/personalization/internal/semantics"
)

// Summary window sizes. Onboarding answers are few and always all count.
const (
	SummaryActivityWindow = 20
	SummaryProjectWindow  = 10
	SummaryChatWindow     = 5

	// SummaryTrendWindow is the number of most recent analyzed records
	// voting on the sentiment trend.
	SummaryTrendWindow = 5

	// SummaryTopKeywords is the number of keywords reported per type.
	SummaryTopKeywords = 5
)

var summaryWindows = map[RecordType]int{
	TypeOnboarding: 0, // all
	TypeActivity:   SummaryActivityWindow,
	TypeProject:    SummaryProjectWindow,
	TypeChat:       SummaryChatWindow,
}

// TypeSummary describes one record type's recent slice of the log.
type TypeSummary struct {
	Count       int        `json:"count"`
	MostRecent  time.Time  `json:"most_recent,omitempty"`
	TopKeywords []string   `json:"top_keywords,omitempty"`
	Type        RecordType `json:"type"`
}

// Summary is a compact per-user view of the context log.
type Summary struct {
	UserID         string                     `json:"user_id"`
	Types          map[RecordType]TypeSummary `json:"types"`
	SentimentTrend semantics.Sentiment        `json:"sentiment_trend"`
	TotalRecords   int                        `json:"total_records"`
}

// Summary builds the per-type summary for a user. A user with no history
// gets an empty summary with a neutral trend, not an error.
func (s *Store) Summary(ctx context.Context, userID string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "contextstore.Summary")
	defer span.End()

	if userID == "" {
		return Summary{}, ErrEmptyUserID
	}

	all, err := s.adapter.QueryByUser(ctx, userID, Filter{}, 0)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		UserID:         userID,
		Types:          make(map[RecordType]TypeSummary, len(recordTypes)),
		SentimentTrend: sentimentTrend(all),
		TotalRecords:   len(all),
	}

	for _, t := range recordTypes {
		var slice []Record
		for _, r := range all {
			if r.Type == t {
				slice = append(slice, r)
			}
		}
		if window := summaryWindows[t]; window > 0 && len(slice) > window {
			slice = slice[len(slice)-window:]
		}

		ts := TypeSummary{Type: t, Count: len(slice)}
		if len(slice) > 0 {
			ts.MostRecent = slice[len(slice)-1].Timestamp
			ts.TopKeywords = topKeywords(slice, SummaryTopKeywords)
		}
		out.Types[t] = ts
	}

	return out, nil
}

// sentimentTrend is a majority vote over the most recent analyzed records:
// positive if positives strictly outnumber negatives, negative if the
// reverse, else neutral.
func sentimentTrend(records []Record) semantics.Sentiment {
	start := len(records) - SummaryTrendWindow
	if start < 0 {
		start = 0
	}

	var pos, neg int
	for _, r := range records[start:] {
		switch r.Analysis.Sentiment {
		case semantics.SentimentPositive:
			pos++
		case semantics.SentimentNegative:
			neg++
		}
	}

	switch {
	case pos > neg:
		return semantics.SentimentPositive
	case neg > pos:
		return semantics.SentimentNegative
	default:
		return semantics.SentimentNeutral
	}
}

// topKeywords ranks keywords across records by frequency, ties broken
// lexicographically for determinism.
func topKeywords(records []Record, max int) []string {
	counts := make(map[string]int)
	for _, r := range records {
		for _, k := range r.Keywords {
			counts[k]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(counts))
	for k := range counts {
		keywords = append(keywords, k)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}
