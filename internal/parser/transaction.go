package parser

import (
	"regexp"
	"strings"

	"github.com/finlens/statement-parser/internal/models"
)

// Keywords that mark a line as a table heading or summary label rather
// than a transaction.
var labelLineKeywords = []string{
	"statement", "account", "balance", "total", "summary",
	"date", "description", "amount", "debit", "credit",
}

// A transaction amount: optionally $-prefixed digits with thousands
// separators and exactly two decimals, parenthesized or minus-signed
// when negative.
var txnAmountPattern = regexp.MustCompile(`\(\$?[\d,]+\.\d{2}\)|-?\$?[\d,]+\.\d{2}`)

// isLabelLine reports whether a line is a heading/label. A keyword line
// that also carries a real ISO date is still treated as a transaction —
// descriptions legitimately contain words like "balance" or "total".
func isLabelLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range labelLineKeywords {
		if strings.Contains(lower, kw) {
			return !isoDatePattern.MatchString(line)
		}
	}
	return false
}

// extractTransactions scans reconstructed lines for date+amount pairs and
// derives each description from the text between (or around) the two
// matches. Lines missing either part are skipped silently; a row is kept
// only when its cleaned description is non-empty.
func (e *Engine) extractTransactions(lines []string, currency string) []models.Transaction {
	var txns []models.Transaction
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || isLabelLine(line) {
			continue
		}

		dateLoc := isoDatePattern.FindStringIndex(line)
		if dateLoc == nil {
			continue
		}
		amtLoc := txnAmountPattern.FindStringIndex(line)
		if amtLoc == nil {
			continue
		}

		desc := describeAround(line, dateLoc, amtLoc)
		if desc == "" {
			continue
		}

		txns = append(txns, models.Transaction{
			Date:        NormalizeDate(line[dateLoc[0]:dateLoc[1]]),
			Description: desc,
			Amount:      NormalizeAmount(line[amtLoc[0]:amtLoc[1]]),
			Currency:    currency,
		})
	}
	if len(txns) > 0 {
		e.log.Debug("line extraction complete", "transactions", len(txns))
	}
	return txns
}

// describeAround takes the substring between the date and amount matches,
// whichever order they appear in. When nothing usable sits between them,
// it falls back to the text before the date (date-after-amount layouts)
// or after the amount (date-first layouts).
func describeAround(line string, dateLoc, amtLoc []int) string {
	var between string
	switch {
	case dateLoc[1] <= amtLoc[0]:
		between = line[dateLoc[1]:amtLoc[0]]
	case amtLoc[1] <= dateLoc[0]:
		between = line[amtLoc[1]:dateLoc[0]]
	}

	if desc := cleanDescription(between); desc != "" {
		return desc
	}
	if dateLoc[0] > amtLoc[0] {
		return cleanDescription(line[:dateLoc[0]])
	}
	return cleanDescription(line[amtLoc[1]:])
}
