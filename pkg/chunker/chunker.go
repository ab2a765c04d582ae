package chunker

import (
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

const (
	// DefaultChunkSize is sized for the 768-dim embedding models used by
	// the provider chain (approx 250 tokens of content).
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Chunk is one overlap-bounded slice of extracted text. Content is always
// an exact substring of the input: Content == text[Start:End].
type Chunk struct {
	Content       string
	Index         int
	Start         int
	End           int
	Length        int
	SentenceCount int
}

// Chunker splits text into sentence-aligned, overlapping chunks.
type Chunker struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	chunkSize int
	overlap   int
}

func New(chunkSize, overlap int) (*Chunker, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultOverlap
	}
	return &Chunker{
		tokenizer: tokenizer,
		chunkSize: chunkSize,
		overlap:   overlap,
	}, nil
}

type span struct {
	start, end int
}

// Chunk greedily accumulates sentences until adding the next one would push
// the buffer past chunkSize, then closes the chunk and seeds the next buffer
// with the trailing overlap of the closed one, trimmed to a word boundary.
// A single sentence longer than chunkSize becomes its own oversized chunk.
func (c *Chunker) Chunk(text string) []Chunk {
	spans := c.sentenceSpans(text)
	if len(spans) == 0 {
		return nil
	}

	var chunks []Chunk
	curStart := spans[0].start
	curEnd := curStart
	sentCount := 0

	closeChunk := func() {
		content := text[curStart:curEnd]
		chunks = append(chunks, Chunk{
			Content:       content,
			Index:         len(chunks),
			Start:         curStart,
			End:           curEnd,
			Length:        len(content),
			SentenceCount: sentCount,
		})
	}

	for _, s := range spans {
		sentLen := s.end - s.start
		if curEnd > curStart && (curEnd-curStart)+sentLen > c.chunkSize {
			closeChunk()
			// Seed the next buffer with the closed chunk's tail.
			curStart = overlapStart(text, curStart, curEnd, c.overlap)
			if curStart >= curEnd {
				// No usable overlap; next chunk starts fresh.
				curStart = s.start
				curEnd = s.start
			}
			sentCount = 0
		}
		if curEnd == curStart {
			curStart = s.start
		}
		curEnd = s.end
		sentCount++
	}

	if curEnd > curStart {
		closeChunk()
	}
	return chunks
}

// sentenceSpans maps tokenizer output back onto byte offsets in text. The
// tokenizer slices its input, so cumulative lengths line up exactly.
func (c *Chunker) sentenceSpans(text string) []span {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sents := c.tokenizer.Tokenize(text)
	spans := make([]span, 0, len(sents))
	cursor := 0
	for _, s := range sents {
		idx := strings.Index(text[cursor:], s.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		end := start + len(s.Text)
		cursor = end

		// Strip the tokenizer's leading/trailing whitespace from the span
		// so chunk boundaries sit on visible characters.
		for start < end && isSpace(text[start]) {
			start++
		}
		for end > start && isSpace(text[end-1]) {
			end--
		}
		if end > start {
			spans = append(spans, span{start: start, end: end})
		}
	}
	return spans
}

// overlapStart returns the start offset of the overlap seed for the next
// chunk: the trailing `overlap` bytes of [chunkStart, chunkEnd), advanced to
// the next word boundary when it would otherwise begin mid-word. The trim
// goes forward, not to the preceding boundary, so the seed stays within
// `overlap` bytes; the cost is a slightly shorter seed, never a longer one.
func overlapStart(text string, chunkStart, chunkEnd, overlap int) int {
	if overlap <= 0 {
		return chunkEnd
	}
	start := chunkEnd - overlap
	if start < chunkStart {
		start = chunkStart
	}
	if start > 0 && !isSpace(text[start]) && !isSpace(text[start-1]) {
		rel := strings.IndexFunc(text[start:chunkEnd], unicode.IsSpace)
		if rel < 0 {
			return chunkEnd
		}
		start += rel + 1
	}
	for start < chunkEnd && isSpace(text[start]) {
		start++
	}
	return start
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
