package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-learndocs-be/pkg/llm"
)

func mustAnalyzer(t *testing.T, provider llm.LLMProvider) *Analyzer {
	t.Helper()
	a, err := New(provider)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func TestClassifySubjectFree(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "math text",
			text: "Solve the equation using the quadratic theorem. The integral of the polynomial gives the area.",
			want: "Mathematics",
		},
		{
			name: "programming text",
			text: "The function stores each variable in an array. The algorithm runs inside a loop and the compiler checks syntax.",
			want: "Programming",
		},
		{
			name: "no signal defaults to General",
			text: "Hello hello hello.",
			want: "General",
		},
	}

	a := mustAnalyzer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.classifySubjectFree(tt.text); got != tt.want {
				t.Errorf("classifySubjectFree() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractKeywordsFree(t *testing.T) {
	text := "Photosynthesis converts sunlight into energy. Photosynthesis happens in chloroplasts. " +
		"Chloroplasts contain chlorophyll. The year 1771 saw early photosynthesis experiments."

	keywords := ExtractKeywordsFree(text, 5)
	if len(keywords) == 0 {
		t.Fatal("ExtractKeywordsFree() returned nothing")
	}
	if keywords[0] != "photosynthesis" {
		t.Errorf("top keyword = %q, want photosynthesis", keywords[0])
	}
	for _, kw := range keywords {
		if kw == "the" || kw == "into" {
			t.Errorf("stop word %q leaked into keywords", kw)
		}
		if kw == "1771" {
			t.Error("pure numeral leaked into keywords")
		}
	}
}

func TestExtractKeywordsFreeTieBreakByFirstOccurrence(t *testing.T) {
	text := "zebra apple zebra apple banana cherry"
	keywords := ExtractKeywordsFree(text, 4)

	want := []string{"zebra", "apple", "banana", "cherry"}
	if len(keywords) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(keywords), len(want))
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, keywords[i], want[i])
		}
	}
}

func TestSummarizeFree(t *testing.T) {
	a := mustAnalyzer(t, nil)

	text := "First sentence here. Second sentence here. Third sentence here. Fourth sentence here."
	summary := a.SummarizeFree(text, 3)
	if strings.Contains(summary, "Fourth") {
		t.Errorf("summary includes sentence past the cutoff: %q", summary)
	}
	if !strings.Contains(summary, "Third sentence") {
		t.Errorf("summary is missing sentence three: %q", summary)
	}

	short := "Only one sentence."
	if got := a.SummarizeFree(short, 3); got != short {
		t.Errorf("SummarizeFree(short) = %q, want text verbatim", got)
	}
}

func TestReadabilityDeterministicAndBanded(t *testing.T) {
	a := mustAnalyzer(t, nil)
	text := "The cat sat on the mat. The dog ran to the park. We like short words."

	first := a.ComputeReadability(text)
	second := a.ComputeReadability(text)
	if first != second {
		t.Error("readability differs between runs on identical input")
	}
	if first.Level != "Very Easy" && first.Level != "Easy" {
		t.Errorf("short-word text scored %q (%.1f), want an easy band", first.Level, first.Score)
	}
}

func TestReadabilityDecreasesWithSyllables(t *testing.T) {
	a := mustAnalyzer(t, nil)

	// Same sentence structure, heavier vocabulary.
	simple := "The cat sat on the mat. The dog ran to the park."
	complex := "The veterinarian hospitalized the domesticated animal. The investigator documented the extraordinary phenomenon."

	if sim, cx := a.ComputeReadability(simple), a.ComputeReadability(complex); sim.Score <= cx.Score {
		t.Errorf("expected simpler text to score higher: simple=%.1f complex=%.1f", sim.Score, cx.Score)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"reading", 2},
		{"syllable", 3},
		{"cache", 1},
		{"table", 2},
		{"a", 1},
		{"rhythm", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := CountSyllables(tt.word); got != tt.want {
				t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestAnalyzeRecordsDegradedPaths(t *testing.T) {
	a := mustAnalyzer(t, fakeLLM{err: errors.New("quota exceeded")})

	result := a.Analyze(context.Background(), "Cells divide through mitosis. Mitosis has several phases. Each phase matters.")

	if result.Subject == "" || result.Summary == "" || len(result.Keywords) == 0 {
		t.Fatal("free fallbacks did not populate the analysis")
	}
	if len(result.Degraded) != 3 {
		t.Errorf("Degraded = %v, want subject, keywords and summary reasons", result.Degraded)
	}
	if result.WordCount != 11 {
		t.Errorf("WordCount = %d, want 11", result.WordCount)
	}
}

func TestAnalyzeRichPathsUsed(t *testing.T) {
	a := mustAnalyzer(t, fakeLLM{reply: "Biology"})

	result := a.Analyze(context.Background(), "Cells divide through mitosis. Mitosis has phases.")

	if result.Subject != "Biology" {
		t.Errorf("Subject = %q, want rich-path label", result.Subject)
	}
	if len(result.Degraded) != 0 {
		t.Errorf("Degraded = %v, want none", result.Degraded)
	}
}
