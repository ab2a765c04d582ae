package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestExtractPlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "Line one.\r\nLine two.")

	e := NewExtractor()
	text, err := e.Extract(path, FileTypeText)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "Line one.\nLine two." {
		t.Errorf("Extract() = %q, want normalized line endings", text)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract("whatever.xyz", FileType("spreadsheet"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractEmptyContent(t *testing.T) {
	path := writeTempFile(t, "blank.txt", "   \n\t  ")

	e := NewExtractor()
	_, err := e.Extract(path, FileTypeText)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Extract() error = %v, want ErrEmptyContent", err)
	}
}

type fakeOCR struct {
	text string
	err  error
}

func (f fakeOCR) Recognize(string) (string, error) {
	return f.text, f.err
}

func TestExtractImageBlankScanIsEmptyContent(t *testing.T) {
	// An unreadable scan OCRs to whitespace; the shared non-empty contract
	// must turn that into ErrEmptyContent.
	path := writeTempFile(t, "scan.png", "not-a-real-image")

	e := NewExtractor()
	e.Register(FileTypeImage, NewImageStrategyWithOCR(fakeOCR{text: "  \n "}))

	_, err := e.Extract(path, FileTypeImage)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Extract() error = %v, want ErrEmptyContent", err)
	}
}

func TestExtractImagePreprocessFailureFallsBack(t *testing.T) {
	// The payload is not decodable as an image, so preprocessing fails and
	// OCR must still run against the original path.
	path := writeTempFile(t, "scan.png", "not-a-real-image")

	e := NewExtractor()
	e.Register(FileTypeImage, NewImageStrategyWithOCR(fakeOCR{text: "Recovered text"}))

	text, err := e.Extract(path, FileTypeImage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "Recovered text" {
		t.Errorf("Extract() = %q, want OCR output from original image", text)
	}
}

func TestExtractWrapsParserFailure(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(filepath.Join(t.TempDir(), "missing.pdf"), FileTypePDF)

	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("Extract() error = %v, want *ExtractionError", err)
	}
	if exErr.Format != FileTypePDF {
		t.Errorf("ExtractionError.Format = %q, want pdf", exErr.Format)
	}
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		declared string
		want     FileType
		wantErr  bool
	}{
		{"pdf", FileTypePDF, false},
		{".PDF", FileTypePDF, false},
		{"application/pdf", FileTypePDF, false},
		{"txt", FileTypeText, false},
		{"docx", FileTypeDocx, false},
		{"jpeg", FileTypeImage, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got, err := ParseFileType(tt.declared)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFileType(%q) error = %v, wantErr %v", tt.declared, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFileType(%q) = %q, want %q", tt.declared, got, tt.want)
			}
		})
	}
}
