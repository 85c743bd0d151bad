package extractor

import "github.com/finlens/statement-parser/internal/models"

// readabilityRule is one row of the classification decision table.
type readabilityRule struct {
	match  func(models.ReadabilityDiagnostics) bool
	result models.Readability
}

// Statements are digit dense, so a document of decent length with almost
// no digits is most likely a scan whose text layer rendered garbage.
// Evaluated top to bottom, first match wins.
var readabilityRules = []readabilityRule{
	{
		match: func(d models.ReadabilityDiagnostics) bool {
			return d.TextLength > 200 && d.DigitCount > 10 && d.ASCIIRatio > 0.7
		},
		result: models.ReadabilityText,
	},
	{
		match: func(d models.ReadabilityDiagnostics) bool {
			return d.TextLength > 50 && d.DigitCount > 3
		},
		result: models.ReadabilityText,
	},
	{
		match: func(d models.ReadabilityDiagnostics) bool {
			return d.TextLength > 10
		},
		result: models.ReadabilityScanned,
	},
}

// Classify maps extraction diagnostics to a readability class.
func Classify(d models.ReadabilityDiagnostics) models.Readability {
	for _, rule := range readabilityRules {
		if rule.match(d) {
			return rule.result
		}
	}
	return models.ReadabilityUnreadable
}
