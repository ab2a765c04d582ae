package analyzer

import (
	"context"
	"strings"

	"ai-learndocs-be/pkg/llm"
)

// DefaultSubject is returned when no subject table entry scores above zero.
const DefaultSubject = "General"

// subjectTable maps subject labels onto indicator terms. Scoring is a plain
// occurrence count over the lowercased text.
var subjectTable = map[string][]string{
	"Mathematics": {"equation", "theorem", "algebra", "calculus", "geometry", "integral", "derivative", "matrix", "polynomial"},
	"Science":     {"experiment", "hypothesis", "molecule", "atom", "cell", "energy", "chemical", "physics", "biology", "organism"},
	"Programming": {"function", "variable", "algorithm", "compiler", "database", "software", "code", "array", "loop", "syntax"},
	"History":     {"century", "empire", "revolution", "war", "dynasty", "ancient", "treaty", "civilization", "colonial"},
	"Language":    {"grammar", "vocabulary", "verb", "noun", "pronunciation", "sentence", "adjective", "tense", "literature"},
	"Business":    {"market", "revenue", "profit", "investment", "management", "customer", "strategy", "finance", "economy"},
}

// classifySubject returns a one-word subject label plus a degraded reason
// when the rich path was skipped or failed.
func (a *Analyzer) classifySubject(ctx context.Context, text string) (string, string) {
	if a.provider != nil {
		prompt := "Classify the following learning material into a single one-word subject label " +
			"(e.g. Mathematics, Science, Programming, History, Language, Business, General). " +
			"Reply with the label only.\n\n" + llmSample(text)

		label, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.1), llm.WithMaxTokens(16))
		if err == nil {
			label = strings.TrimSpace(strings.Split(label, "\n")[0])
			if label != "" && len(label) <= 40 {
				return label, ""
			}
		}
		return a.classifySubjectFree(text), "subject: llm unavailable"
	}
	return a.classifySubjectFree(text), ""
}

func (a *Analyzer) classifySubjectFree(text string) string {
	lowered := strings.ToLower(text)

	best := DefaultSubject
	bestScore := 0
	// Map iteration order is random; collect and compare deterministically.
	for _, subject := range []string{"Mathematics", "Science", "Programming", "History", "Language", "Business"} {
		score := 0
		for _, term := range subjectTable[subject] {
			score += strings.Count(lowered, term)
		}
		if score > bestScore {
			best = subject
			bestScore = score
		}
	}
	return best
}
