package analyzer

import (
	"strings"
	"unicode"
)

// readabilityLevels maps Flesch Reading Ease score floors onto the seven
// ordinal bands, highest first.
var readabilityLevels = []struct {
	floor float64
	level string
}{
	{90, "Very Easy"},
	{80, "Easy"},
	{70, "Fairly Easy"},
	{60, "Standard"},
	{50, "Fairly Difficult"},
	{30, "Difficult"},
}

// ComputeReadability is a Flesch Reading Ease approximation:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// It is fully local and deterministic; there is no rich path.
func (a *Analyzer) ComputeReadability(text string) Readability {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Readability{Score: 0, Level: "Very Difficult"}
	}

	sentenceCount := len(a.sentencesOf(text))
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	avgWords := float64(len(words)) / float64(sentenceCount)
	avgSyllables := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*avgWords - 84.6*avgSyllables

	return Readability{
		Score:               score,
		Level:               levelFor(score),
		AvgWordsPerSentence: avgWords,
		AvgSyllablesPerWord: avgSyllables,
	}
}

func levelFor(score float64) string {
	for _, band := range readabilityLevels {
		if score >= band.floor {
			return band.level
		}
	}
	return "Very Difficult"
}

// CountSyllables estimates syllables by counting vowel-group transitions
// with a silent trailing "e" correction. Every word counts at least one.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	// Silent trailing "e": "cache" has two vowel groups but one spoken
	// syllable more than "cach".
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
