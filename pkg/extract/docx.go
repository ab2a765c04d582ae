package extract

import (
	"strings"

	"github.com/unidoc/unioffice/document"
)

// DocxStrategy walks paragraphs and runs of a word-processor file.
type DocxStrategy struct{}

func NewDocxStrategy() *DocxStrategy {
	return &DocxStrategy{}
}

func (s *DocxStrategy) Extract(filePath string) (string, error) {
	doc, err := document.Open(filePath)
	if err != nil {
		return "", &ExtractionError{Format: FileTypeDocx, Err: err}
	}
	defer doc.Close()

	var buf strings.Builder
	for _, para := range doc.Paragraphs() {
		var line strings.Builder
		for _, run := range para.Runs() {
			line.WriteString(run.Text())
		}
		if line.Len() > 0 {
			buf.WriteString(line.String())
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}
