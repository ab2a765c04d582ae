package extract

import (
	"bytes"
	"os"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// PDFStrategy extracts text page by page using unipdf.
type PDFStrategy struct{}

func NewPDFStrategy() *PDFStrategy {
	return &PDFStrategy{}
}

func (s *PDFStrategy) Extract(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", &ExtractionError{Format: FileTypePDF, Err: err}
	}

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Format: FileTypePDF, Err: err}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", &ExtractionError{Format: FileTypePDF, Err: err}
	}

	var buf strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return "", &ExtractionError{Format: FileTypePDF, Err: err}
		}
		ex, err := extractor.New(page)
		if err != nil {
			return "", &ExtractionError{Format: FileTypePDF, Err: err}
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			return "", &ExtractionError{Format: FileTypePDF, Err: err}
		}
		if pageText != "" {
			buf.WriteString(pageText)
			if i < numPages {
				buf.WriteString("\n\n")
			}
		}
	}

	return buf.String(), nil
}
