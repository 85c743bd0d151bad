package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	isoDateExact   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// Mon D, YYYY with optional period after the abbreviation and
	// optional comma before the year.
	monthDatePattern = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})`)
	numericDate      = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})$`)
	slashDatePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	wsPattern        = regexp.MustCompile(`\s+`)
	dateJunk         = regexp.MustCompile(`[^\d/\-.]`)
)

var monthsByAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// NormalizeDate canonicalizes a date string to YYYY-MM-DD. Already-ISO
// input passes through; month-name forms use a fixed 12-entry abbreviation
// table; numeric N/N/YYYY input is read as month/day/year (US convention,
// fixed rather than detected per document). Returns "" when the input is
// not a valid calendar date.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if m := monthDatePattern.FindStringSubmatch(raw); m != nil {
		month := monthsByAbbrev[strings.ToLower(m[1][:3])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return formatCalendarDate(year, month, day)
	}

	// Numeric forms: keep only digits and separators.
	stripped := dateJunk.ReplaceAllString(raw, "")

	if isoDateExact.MatchString(stripped) {
		if _, err := time.Parse("2006-01-02", stripped); err != nil {
			return ""
		}
		return stripped
	}

	if m := numericDate.FindStringSubmatch(stripped); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return formatCalendarDate(year, month, day)
	}

	return ""
}

// formatCalendarDate rejects dates that only exist through rollover
// (month 13, Feb 30) by round-tripping through time.Date.
func formatCalendarDate(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ""
	}
	return t.Format("2006-01-02")
}

// NormalizeAmount canonicalizes an amount to a signed decimal string with
// exactly two fraction digits. Negativity is signaled by a leading minus
// or by parenthesization; currency symbols and any other characters are
// discarded and thousands separators removed. Unparsable input yields
// "0.00", never an error.
func NormalizeAmount(raw string) string {
	s := strings.TrimSpace(raw)
	negative := strings.HasPrefix(s, "-") ||
		(strings.Contains(s, "(") && strings.Contains(s, ")"))

	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	kept = strings.ReplaceAll(kept, ",", "")

	d, err := decimal.NewFromString(kept)
	if err != nil {
		return "0.00"
	}
	if negative {
		d = d.Neg()
	}
	return d.StringFixed(2)
}

// currencyRule pairs a currency code with the symbols and keywords that
// identify it in document text.
type currencyRule struct {
	code     string
	patterns []string
}

// Ordered table, first match wins. USD is listed first, so a bare "$"
// decides before the two-character "S$" rule is ever consulted; SGD is
// still reachable through its keyword forms.
var currencyRules = []currencyRule{
	{"USD", []string{"$", "usd", "us dollar"}},
	{"EUR", []string{"€", "eur", "euro"}},
	{"GBP", []string{"£", "gbp", "pound"}},
	{"PHP", []string{"₱", "php", "peso"}},
	{"SGD", []string{"s$", "sgd", "singapore"}},
}

// DetectCurrency tests document text against the symbol/keyword table and
// returns the first matching code, defaulting to USD.
func DetectCurrency(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range currencyRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.code
			}
		}
	}
	return "USD"
}

// cleanDescription collapses whitespace runs and strips characters outside
// word characters, whitespace, hyphen and period.
func cleanDescription(s string) string {
	s = descCleanPattern.ReplaceAllString(s, "")
	s = wsPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var descCleanPattern = regexp.MustCompile(`[^\w\s.-]`)
