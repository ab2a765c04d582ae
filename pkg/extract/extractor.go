package extract

import (
	"errors"
	"fmt"
	"strings"
)

// FileType identifies the ingestion format of an uploaded document.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeText  FileType = "text"
	FileTypeDocx  FileType = "docx"
	FileTypeImage FileType = "image"
)

var (
	// ErrUnsupportedFormat is returned when no strategy exists for the file type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyContent is returned when a strategy succeeds but yields no text.
	ErrEmptyContent = errors.New("document contains no extractable text")
)

// ExtractionError wraps an underlying parser failure with the format it came from.
type ExtractionError struct {
	Format FileType
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Strategy extracts plain text from a single document format.
type Strategy interface {
	Extract(filePath string) (string, error)
}

// Extractor dispatches extraction to a per-format strategy.
type Extractor struct {
	strategies map[FileType]Strategy
}

func NewExtractor() *Extractor {
	return &Extractor{
		strategies: map[FileType]Strategy{
			FileTypePDF:   NewPDFStrategy(),
			FileTypeText:  NewPlainTextStrategy(),
			FileTypeDocx:  NewDocxStrategy(),
			FileTypeImage: NewImageStrategy(),
		},
	}
}

// Register replaces the strategy for a file type. Used by tests and by
// callers that need a custom OCR backend.
func (e *Extractor) Register(ft FileType, s Strategy) {
	e.strategies[ft] = s
}

// Extract runs the strategy for the declared file type and enforces the
// non-empty contract shared by every format.
func (e *Extractor) Extract(filePath string, fileType FileType) (string, error) {
	strategy, ok := e.strategies[fileType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, fileType)
	}

	text, err := strategy.Extract(filePath)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// ParseFileType maps a declared extension or MIME shorthand onto a FileType.
func ParseFileType(declared string) (FileType, error) {
	switch strings.ToLower(strings.TrimPrefix(declared, ".")) {
	case "pdf", "application/pdf":
		return FileTypePDF, nil
	case "txt", "text", "md", "text/plain":
		return FileTypeText, nil
	case "doc", "docx", "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FileTypeDocx, nil
	case "png", "jpg", "jpeg", "tiff", "bmp", "image":
		return FileTypeImage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, declared)
	}
}
