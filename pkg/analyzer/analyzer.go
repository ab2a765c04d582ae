package analyzer

import (
	"context"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"ai-learndocs-be/pkg/llm"
)

const (
	// DefaultKeywordCount and DefaultSummarySentences bound the free paths.
	DefaultKeywordCount     = 10
	DefaultSummarySentences = 3
)

// Readability is a Flesch Reading Ease result.
type Readability struct {
	Score               float64 `json:"score"`
	Level               string  `json:"level"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
}

// Analysis is the per-document metadata derivation. Degraded lists which
// rich (LLM) paths fell back to their deterministic free path, so callers
// can assert degradation instead of guessing at swallowed errors.
type Analysis struct {
	Subject     string
	Keywords    []string
	Summary     string
	Language    string
	WordCount   int
	Readability Readability
	Degraded    []string
}

// Analyzer derives document metadata. Every derivation has a deterministic
// fallback; a nil LLM provider simply means all paths run free.
type Analyzer struct {
	provider  llm.LLMProvider
	tokenizer *sentences.DefaultSentenceTokenizer
}

func New(provider llm.LLMProvider) (*Analyzer, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &Analyzer{provider: provider, tokenizer: tokenizer}, nil
}

// Analyze never fails: rich-path errors are absorbed and recorded in
// Degraded, and the free paths always produce a value.
func (a *Analyzer) Analyze(ctx context.Context, text string) *Analysis {
	result := &Analysis{
		Language:  a.detectLanguage(text),
		WordCount: len(strings.Fields(text)),
	}

	subject, degraded := a.classifySubject(ctx, text)
	result.Subject = subject
	if degraded != "" {
		result.Degraded = append(result.Degraded, degraded)
	}

	keywords, degraded := a.extractKeywords(ctx, text, DefaultKeywordCount)
	result.Keywords = keywords
	if degraded != "" {
		result.Degraded = append(result.Degraded, degraded)
	}

	summary, degraded := a.summarize(ctx, text, DefaultSummarySentences)
	result.Summary = summary
	if degraded != "" {
		result.Degraded = append(result.Degraded, degraded)
	}

	result.Readability = a.ComputeReadability(text)
	return result
}

func (a *Analyzer) detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6393()
	if code == "" {
		return "und"
	}
	return code
}

// sentencesOf returns trimmed, non-empty sentence texts.
func (a *Analyzer) sentencesOf(text string) []string {
	raw := a.tokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// llmSample caps the text sent to rich paths; the free paths always see the
// full text.
func llmSample(text string) string {
	const maxSample = 4000
	if len(text) <= maxSample {
		return text
	}
	return text[:maxSample]
}
