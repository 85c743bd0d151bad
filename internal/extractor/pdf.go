package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Fragment is one positioned text item from a PDF page's text layer.
// X grows left to right, Y grows bottom to top (PDF coordinate space).
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the fragments of a single PDF page in whatever order the
// library produced them; reading order is reconstructed later.
type Page []Fragment

// ExtractFragments opens a PDF and returns the positioned text fragments
// of each page. A document with no retrievable text layer yields pages
// with no fragments rather than an error; only a file that cannot be
// opened at all is reported. The library occasionally panics on damaged
// cross-reference tables, so the whole call is guarded.
func ExtractFragments(filePath string) (pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, fmt.Errorf("open PDF: %w", openErr)
	}
	defer f.Close()

	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		frags := make(Page, 0, len(content.Text))
		for _, t := range content.Text {
			frags = append(frags, Fragment{Text: t.S, X: t.X, Y: t.Y})
		}
		pages = append(pages, frags)
	}
	return pages, nil
}
