package parser

import (
	"strings"
	"testing"

	"github.com/finlens/statement-parser/internal/models"
)

func TestExtractHeader(t *testing.T) {
	lines := strings.Split(`First National Bank Statement
Account Number: ****1234
Statement Date: Jan 31, 2024
Opening Balance: $1,200.00
Closing Balance: $1,150.00`, "\n")

	h := extractHeader(lines)

	if h.Bank != "First National Bank Statement" {
		t.Errorf("bank: got %q", h.Bank)
	}
	if h.CustomerAccount != "****1234" {
		t.Errorf("customerAccount: got %q", h.CustomerAccount)
	}
	if h.StatementDate != "2024-01-31" {
		t.Errorf("statementDate: got %q", h.StatementDate)
	}
	if h.OpeningBalance != "1,200.00" {
		t.Errorf("openingBalance: got %q", h.OpeningBalance)
	}
	if h.ClosingBalance != "1,150.00" {
		t.Errorf("closingBalance: got %q", h.ClosingBalance)
	}
	// No line-based rule exists for the bank account field.
	if h.BankAccount != models.UnknownField {
		t.Errorf("bankAccount: got %q, want sentinel", h.BankAccount)
	}
}

func TestExtractHeader_CreditCard(t *testing.T) {
	lines := []string{"Acme Credit Card Statement for March"}

	h := extractHeader(lines)

	if h.Bank != "Acme Credit Card Statement for March" {
		t.Errorf("bank: got %q", h.Bank)
	}
}

func TestExtractHeader_WhitespaceCollapsed(t *testing.T) {
	lines := []string{"First   National\tBank   Statement"}

	h := extractHeader(lines)

	if h.Bank != "First National Bank Statement" {
		t.Errorf("bank: got %q", h.Bank)
	}
}

func TestExtractHeader_FirstMatchWins(t *testing.T) {
	lines := []string{
		"Alpha Bank Statement",
		"Beta Bank Statement",
		"Statement Date: 2024-01-31",
		"Statement Date: 2024-02-28",
	}

	h := extractHeader(lines)

	if h.Bank != "Alpha Bank Statement" {
		t.Errorf("bank: got %q, want first match", h.Bank)
	}
	if h.StatementDate != "2024-01-31" {
		t.Errorf("statementDate: got %q, want first match", h.StatementDate)
	}
}

func TestExtractHeader_ScanLimit(t *testing.T) {
	// Metadata past the first 15 lines is never seen.
	lines := make([]string, 16)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[15] = "First National Bank Statement"

	h := extractHeader(lines)

	if h.Bank != models.UnknownField {
		t.Errorf("bank: got %q, want sentinel (line 16 is out of range)", h.Bank)
	}
}

func TestExtractHeader_AccountNumberVariants(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Account Number: 1234-5678", "1234-5678"},
		{"Account Number: xxxx xxxx 1234", "xxxx xxxx 1234"},
		{"Your account number is ****9876", "****9876"},
	}

	for _, tt := range tests {
		h := extractHeader([]string{tt.line})
		if h.CustomerAccount != tt.want {
			t.Errorf("extractHeader(%q).CustomerAccount: got %q, want %q", tt.line, h.CustomerAccount, tt.want)
		}
	}
}

func TestExtractHeader_NoTriggers(t *testing.T) {
	h := extractHeader([]string{"2024-01-15 Coffee 4.50", "just some text"})

	want := models.NewStatementHeader()
	want.RowScore = h.RowScore
	if h != want {
		t.Errorf("expected all-sentinel header, got %+v", h)
	}
}

func TestExtractHeader_BalanceNeedsDollarAmount(t *testing.T) {
	// "opening" without a $-prefixed two-decimal amount is not a match;
	// a later qualifying line still wins.
	lines := []string{
		"Opening balance carried forward",
		"Opening Balance: $500.00",
	}

	h := extractHeader(lines)

	if h.OpeningBalance != "500.00" {
		t.Errorf("openingBalance: got %q, want %q", h.OpeningBalance, "500.00")
	}
}
