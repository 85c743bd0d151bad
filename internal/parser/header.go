package parser

import (
	"regexp"
	"strings"

	"github.com/finlens/statement-parser/internal/models"
)

// headerScanLines caps how far into the document header extraction looks.
const headerScanLines = 15

var (
	// Masked-account-friendly: a run of digits, asterisks, x's, spaces
	// and hyphens, at least four characters long.
	accountIDPattern = regexp.MustCompile(`(?i)[*x0-9][*x0-9\s-]{3,}`)
	// Header balances are $-prefixed with two decimals.
	headerAmountPattern = regexp.MustCompile(`\$[\d,]+\.\d{2}`)
)

// extractHeader scans at most the first 15 lines for statement metadata.
// For each field the first line matching its trigger wins; there is no
// rescanning or best-match search. Fields never matched keep their
// sentinel defaults. BankAccount has no line-based extraction rule and
// always remains the sentinel.
func extractHeader(lines []string) models.StatementHeader {
	h := models.NewStatementHeader()

	limit := len(lines)
	if limit > headerScanLines {
		limit = headerScanLines
	}

	for _, raw := range lines[:limit] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if h.Bank == models.UnknownField &&
			(strings.Contains(lower, "bank") || strings.Contains(lower, "credit card")) &&
			strings.Contains(lower, "statement") {
			h.Bank = wsPattern.ReplaceAllString(line, " ")
		}

		if h.CustomerAccount == models.UnknownField &&
			strings.Contains(lower, "account") && strings.Contains(lower, "number") {
			if m := strings.TrimSpace(accountIDPattern.FindString(line)); m != "" {
				h.CustomerAccount = m
			}
		}

		if h.StatementDate == models.UnknownField &&
			strings.Contains(lower, "statement") && strings.Contains(lower, "date") {
			if m := findFirstDate(line); m != "" {
				if norm := NormalizeDate(m); norm != "" {
					h.StatementDate = norm
				}
			}
		}

		if h.OpeningBalance == models.ZeroBalance && strings.Contains(lower, "opening") {
			if m := headerAmountPattern.FindString(line); m != "" {
				// Symbol stripped; the sign is left for the scorer's
				// reconciliation pass to normalize.
				h.OpeningBalance = strings.TrimPrefix(m, "$")
			}
		}

		if h.ClosingBalance == models.ZeroBalance && strings.Contains(lower, "closing") {
			if m := headerAmountPattern.FindString(line); m != "" {
				h.ClosingBalance = strings.TrimPrefix(m, "$")
			}
		}
	}

	return h
}

// findFirstDate returns the first date-looking substring of a line,
// trying ISO, month-name, then slash-numeric forms in that order.
func findFirstDate(line string) string {
	if m := isoDatePattern.FindString(line); m != "" {
		return m
	}
	if m := monthDatePattern.FindString(line); m != "" {
		return m
	}
	if m := slashDatePattern.FindString(line); m != "" {
		return m
	}
	return ""
}
