// Package ocr extracts raw text from invoice documents. Extraction
// failures surface as empty text to the caller, never as fatal pipeline
// errors: a blank page is a legitimate low-confidence input.
package ocr

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fpl-auction/invoice-cli/internal/config"
)

// Extractor extracts text content from a document on disk.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Router picks the right backend per file type: pdftotext for PDFs,
// tesseract for images, with an optional vision-model fallback when
// tesseract is missing or returns nothing usable.
type Router struct {
	pdf    Extractor
	image  Extractor
	vision Extractor
}

// NewRouter builds a Router from config. The vision backend is wired only
// when an API key is configured.
func NewRouter(cfg config.OCRConfig) *Router {
	r := &Router{
		pdf:   newPdfToText(cfg.PdfToTextPath),
		image: newTesseract(cfg.TesseractPath),
	}
	if cfg.VisionKey != "" {
		r.vision = NewVision(cfg.VisionKey, cfg.VisionModel, cfg.VisionRPS)
	}
	return r
}

// ExtractText dispatches on the file extension. Unknown extensions yield
// empty text.
func (r *Router) ExtractText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.pdf.ExtractText(ctx, path)
	case ".png", ".jpg", ".jpeg":
		text, err := r.image.ExtractText(ctx, path)
		if (err != nil || strings.TrimSpace(text) == "") && r.vision != nil {
			return r.vision.ExtractText(ctx, path)
		}
		return text, err
	default:
		return "", nil
	}
}

// Supported reports whether the file type has an extraction backend.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
