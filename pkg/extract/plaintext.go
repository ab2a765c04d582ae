package extract

import (
	"os"
	"strings"
)

// PlainTextStrategy reads the file verbatim and normalizes line endings.
type PlainTextStrategy struct{}

func NewPlainTextStrategy() *PlainTextStrategy {
	return &PlainTextStrategy{}
}

func (s *PlainTextStrategy) Extract(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", &ExtractionError{Format: FileTypeText, Err: err}
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
