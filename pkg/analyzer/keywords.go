package analyzer

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"ai-learndocs-be/pkg/llm"
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "its": true,
	"has": true, "have": true, "had": true, "this": true, "that": true,
	"with": true, "from": true, "they": true, "those": true, "been": true,
	"were": true, "their": true, "which": true, "will": true, "would": true,
	"there": true, "what": true, "when": true, "your": true, "said": true,
	"each": true, "about": true, "them": true, "then": true, "some": true,
	"these": true, "than": true, "into": true, "more": true, "other": true,
	"also": true, "such": true, "only": true, "over": true, "most": true,
	"very": true, "after": true, "between": true, "because": true,
	"where": true, "while": true, "through": true, "during": true,
	"being": true, "before": true, "under": true, "however": true,
	"should": true, "could": true, "does": true, "both": true,
}

func (a *Analyzer) extractKeywords(ctx context.Context, text string, n int) ([]string, string) {
	if a.provider != nil {
		prompt := "List the most important keywords of the following learning material, " +
			"comma separated, lowercase, no commentary.\n\n" + llmSample(text)

		raw, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
		if err == nil {
			keywords := parseKeywordList(raw, n)
			if len(keywords) > 0 {
				return keywords, ""
			}
		}
		return ExtractKeywordsFree(text, n), "keywords: llm unavailable"
	}
	return ExtractKeywordsFree(text, n), ""
}

// ExtractKeywordsFree tokenizes, drops stop words and pure numerals, and
// returns the top n tokens by descending frequency. Ties resolve by first
// occurrence, which keeps the output deterministic.
func ExtractKeywordsFree(text string, n int) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if len(tok) < 3 || stopWords[tok] || isNumeral(tok) {
			continue
		}
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
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
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}

func parseKeywordList(raw string, n int) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "-*•."))
		if p == "" || len(p) > 60 {
			continue
		}
		keywords = append(keywords, strings.ToLower(p))
		if len(keywords) == n {
			break
		}
	}
	return keywords
}

func isNumeral(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
