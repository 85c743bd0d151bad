package extractor

import (
	"sort"
	"strings"
	"unicode"

	"github.com/finlens/statement-parser/internal/models"
)

// yTolerance is how far a fragment's Y may drift from the current line's
// anchor before a new output line starts. Coordinate units, not a physical
// size — documents set in very small fonts may merge adjacent lines.
const yTolerance = 5.0

// Reconstruct rebuilds reading order from positioned fragments and returns
// the document text (pages joined by a blank line) together with the
// readability diagnostics computed over that text. No text layer at all
// yields empty text and zero diagnostics.
func Reconstruct(pages []Page) (string, models.ReadabilityDiagnostics) {
	pageTexts := make([]string, 0, len(pages))
	for _, page := range pages {
		pageTexts = append(pageTexts, reconstructPage(page))
	}
	text := strings.Join(pageTexts, "\n\n")
	return text, computeDiagnostics(text, len(pages))
}

// reconstructPage sorts fragments top-to-bottom then left-to-right and
// folds them into lines, breaking whenever Y moves past the tolerance.
func reconstructPage(frags Page) string {
	sorted := make(Page, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []string
	var line strings.Builder
	var anchorY float64
	started := false

	flush := func() {
		if text := strings.TrimSpace(line.String()); text != "" {
			lines = append(lines, text)
		}
		line.Reset()
	}

	for _, f := range sorted {
		if !started {
			anchorY = f.Y
			started = true
		} else if diff := f.Y - anchorY; diff > yTolerance || diff < -yTolerance {
			flush()
			anchorY = f.Y
		}
		appendFragment(&line, f.Text)
	}
	flush()

	return strings.Join(lines, "\n")
}

// appendFragment joins a fragment onto the current line, inserting a single
// space unless either side already has whitespace at the boundary.
func appendFragment(line *strings.Builder, text string) {
	if text == "" {
		return
	}
	cur := line.String()
	if cur != "" && !hasTrailingSpace(cur) && !hasLeadingSpace(text) {
		line.WriteByte(' ')
	}
	line.WriteString(text)
}

func hasTrailingSpace(s string) bool {
	runes := []rune(s)
	return unicode.IsSpace(runes[len(runes)-1])
}

func hasLeadingSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

// computeDiagnostics walks the final text once, counting characters,
// digits, and printable-ASCII characters (whitespace included).
func computeDiagnostics(text string, pageCount int) models.ReadabilityDiagnostics {
	d := models.ReadabilityDiagnostics{PageCount: pageCount}
	printable := 0
	for _, r := range text {
		d.TextLength++
		if r >= '0' && r <= '9' {
			d.DigitCount++
		}
		if (r >= 0x20 && r < 0x7F) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	if d.TextLength > 0 {
		d.ASCIIRatio = float64(printable) / float64(d.TextLength)
	}
	return d
}
