package semantics

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "his": true,
	"has": true, "have": true, "had": true, "with": true, "this": true,
	"that": true, "from": true, "they": true, "will": true, "would": true,
	"there": true, "their": true, "what": true, "about": true, "which": true,
	"when": true, "them": true, "some": true, "into": true, "only": true,
	"other": true, "then": true, "than": true, "also": true, "been": true,
	"because": true, "just": true, "like": true, "really": true, "very": true,
	"want": true, "need": true, "more": true, "how": true, "why": true,
	"who": true, "get": true, "got": true, "its": true, "it's": true,
	"i'm": true, "don't": true, "doing": true, "does": true, "did": true,
	"should": true, "could": true,
}

// minKeywordLen filters trivially short tokens.
const minKeywordLen = 3

// ExtractKeywords tokenizes text and returns unique keywords ordered by
// frequency (ties broken by first appearance). At most max keywords are
// returned; max <= 0 returns all. Results are lowercased.
func ExtractKeywords(text string, max int) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	first := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			first[tok] = i
		}
		counts[tok]++
	}

	unique := make([]string, 0, len(counts))
	for tok := range counts {
		unique = append(unique, tok)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return first[unique[i]] < first[unique[j]]
	})

	if max > 0 && len(unique) > max {
		unique = unique[:max]
	}
	return unique
}

// tokenize splits text into lowercase tokens, dropping stopwords and short
// tokens. Apostrophes are kept inside words so contractions match the
// stopword list.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '.' && r != '+' && r != '#'
	})

	var tokens []string
	for _, f := range fields {
		f = strings.Trim(f, "'.")
		if len(f) < minKeywordLen || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
