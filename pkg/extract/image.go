package extract

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ocrWidth is the working width images are normalized to before OCR.
// Tesseract accuracy drops sharply on low-resolution scans.
const ocrWidth = 1600

// OCRClient abstracts the tesseract binding so tests can stub it.
type OCRClient interface {
	Recognize(imagePath string) (string, error)
}

type tesseractClient struct{}

func (tesseractClient) Recognize(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", err
	}
	return client.Text()
}

// ImageStrategy preprocesses a scanned image and runs OCR over it.
type ImageStrategy struct {
	ocr OCRClient
}

func NewImageStrategy() *ImageStrategy {
	return &ImageStrategy{ocr: tesseractClient{}}
}

// NewImageStrategyWithOCR injects a custom OCR backend.
func NewImageStrategyWithOCR(ocr OCRClient) *ImageStrategy {
	return &ImageStrategy{ocr: ocr}
}

func (s *ImageStrategy) Extract(filePath string) (string, error) {
	// Preprocessing failures must not abort extraction; OCR runs on the
	// original image instead.
	ocrPath := filePath
	if preprocessed, err := s.preprocess(filePath); err == nil {
		ocrPath = preprocessed
		defer os.Remove(preprocessed)
	}

	text, err := s.ocr.Recognize(ocrPath)
	if err != nil {
		return "", &ExtractionError{Format: FileTypeImage, Err: err}
	}
	return text, nil
}

// preprocess normalizes size, converts to grayscale and sharpens, writing
// the result to a temp file next to the OS temp dir.
func (s *ImageStrategy) preprocess(filePath string) (string, error) {
	img, err := imaging.Open(filePath)
	if err != nil {
		return "", err
	}

	if img.Bounds().Dx() < ocrWidth {
		img = imaging.Resize(img, ocrWidth, 0, imaging.Lanczos)
	}
	img = imaging.Grayscale(img)
	img = imaging.Sharpen(img, 1.0)

	out, err := os.CreateTemp("", "ocr-*"+filepath.Ext(filePath))
	if err != nil {
		return "", err
	}
	outPath := out.Name()
	out.Close()

	if err := imaging.Save(img, outPath); err != nil {
		os.Remove(outPath)
		return "", err
	}
	return outPath, nil
}
