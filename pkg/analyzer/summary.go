package analyzer

import (
	"context"
	"strings"

	"ai-learndocs-be/pkg/llm"
)

func (a *Analyzer) summarize(ctx context.Context, text string, n int) (string, string) {
	if a.provider != nil {
		prompt := "Summarize the following learning material in two or three plain sentences. " +
			"Reply with the summary only.\n\n" + llmSample(text)

		summary, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
		if err == nil {
			summary = strings.TrimSpace(summary)
			if summary != "" {
				return summary, ""
			}
		}
		return a.SummarizeFree(text, n), "summary: llm unavailable"
	}
	return a.SummarizeFree(text, n), ""
}

// SummarizeFree returns the first n sentences verbatim, or the whole text
// when it has n sentences or fewer.
func (a *Analyzer) SummarizeFree(text string, n int) string {
	sents := a.sentencesOf(text)
	if len(sents) <= n {
		return strings.TrimSpace(text)
	}
	return strings.Join(sents[:n], " ")
}
