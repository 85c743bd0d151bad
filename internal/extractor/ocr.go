package extractor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// TextExtractor obtains per-page text for a document on disk. Two variants
// exist: the embedded text layer and OCR for scanned documents. An
// implementation that cannot produce text reports an error and the caller
// proceeds with whatever text it already has.
type TextExtractor interface {
	// Name identifies the variant in diagnostic events.
	Name() string
	// ExtractPages returns the text of each page of the document at path.
	ExtractPages(path string) ([]string, error)
}

// EmbeddedText extracts the PDF's own text layer with reading-order
// reconstruction.
type EmbeddedText struct{}

func (EmbeddedText) Name() string { return "embedded-text" }

func (EmbeddedText) ExtractPages(path string) ([]string, error) {
	pages, err := ExtractFragments(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, reconstructPage(p))
	}
	return out, nil
}

// StubOCR is the default OCR variant: it always reports that OCR is
// unsupported. It keeps the seam in place so a real engine such as
// TesseractOCR can be substituted without touching the classifier or the
// parsing pipeline.
type StubOCR struct{}

func (StubOCR) Name() string { return "ocr-stub" }

func (StubOCR) ExtractPages(string) ([]string, error) {
	return nil, errors.New("OCR is not supported in this build")
}

// TesseractOCR converts PDF pages to images and runs Tesseract on each.
// Requires pdftoppm (poppler-utils) and tesseract on PATH.
type TesseractOCR struct{}

func (TesseractOCR) Name() string { return "ocr-tesseract" }

// Available reports whether the external OCR tools are installed.
func (TesseractOCR) Available() bool {
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	return err1 == nil && err2 == nil
}

func (t TesseractOCR) ExtractPages(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives tesseract enough detail for statement tables.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", "300", "-png", path, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %v", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
		// PSM 4 = single column of text of variable sizes, a good fit
		// for statement layouts.
		cmd := exec.Command("tesseract", imgFile, outBase, "-l", "eng", "--psm", "4")
		if out, err := cmd.CombinedOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v (output: %s)\n", imgFile, err, string(out))
			continue
		}

		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			continue
		}

		text := strings.TrimSpace(string(data))
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("tesseract OCR produced no text from %d page images", len(imageFiles))
	}

	return pages, nil
}
