package parser

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Already ISO passes through unchanged.
		{"2024-01-15", "2024-01-15"},
		{"2024-12-31", "2024-12-31"},
		{" 2024-01-15 ", "2024-01-15"},
		// Month-name forms.
		{"Jan 5, 2024", "2024-01-05"},
		{"January 5, 2024", "2024-01-05"},
		{"Mar 31 2024", "2024-03-31"},
		{"dec 1, 2023", "2023-12-01"},
		// Numeric forms read as month/day/year.
		{"3/7/2024", "2024-03-07"},
		{"12/25/2024", "2024-12-25"},
		{"1-2-2024", "2024-01-02"},
		// Invalid calendar dates yield empty.
		{"2024-13-01", ""},
		{"13/32/2024", ""},
		{"2/30/2024", ""},
		{"0/0/2024", ""},
		// Unrecognized forms yield empty.
		{"", ""},
		{"not a date", ""},
		{"15 Jan 2024", ""},
		{"2024", ""},
	}

	for _, tt := range tests {
		got := NormalizeDate(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeDate(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	dates := []string{"2024-01-15", "2023-06-30", "2020-02-29"}
	for _, d := range dates {
		once := NormalizeDate(d)
		if once != d {
			t.Errorf("NormalizeDate(%q) = %q, want unchanged", d, once)
		}
		twice := NormalizeDate(once)
		if twice != once {
			t.Errorf("NormalizeDate not idempotent: %q -> %q -> %q", d, once, twice)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1200.50", "1200.50"},
		{"$1,200.50", "1200.50"},
		{"1,200.50", "1200.50"},
		{"($50.00)", "-50.00"},
		{"(50.00)", "-50.00"},
		{"-50.00", "-50.00"},
		{"-$50.00", "-50.00"},
		{"4.50", "4.50"},
		{"85.23", "85.23"},
		{"$1,234,567.89", "1234567.89"},
		{"12", "12.00"},
		{"12.5", "12.50"},
		{"0", "0.00"},
		// Unparsable input yields "0.00", never an error.
		{"", "0.00"},
		{"abc", "0.00"},
		{"1.2.3", "0.00"},
	}

	for _, tt := range tests {
		got := NormalizeAmount(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeAmount(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAmount_EquivalentNotations(t *testing.T) {
	// Different notations of the same value canonicalize identically.
	groups := map[string][]string{
		"1200.50": {"$1,200.50", "1200.50", "1,200.50"},
		"-50.00":  {"($50.00)", "(50.00)", "-50.00", "-$50.00"},
	}

	for want, inputs := range groups {
		for _, in := range inputs {
			if got := NormalizeAmount(in); got != want {
				t.Errorf("NormalizeAmount(%q): got %q, want %q", in, got, want)
			}
		}
	}
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dollar symbol", "Opening Balance: $100.00", "USD"},
		{"euro symbol", "Saldo: €250,00", "EUR"},
		{"euro keyword", "Amounts shown in Euro", "EUR"},
		{"pound symbol", "Balance £42.00", "GBP"},
		{"peso symbol", "₱1,000.00", "PHP"},
		{"peso keyword", "amounts in Peso", "PHP"},
		{"sgd keyword", "All amounts in SGD", "SGD"},
		{"singapore keyword", "Bank of Singapore", "SGD"},
		{"default when nothing matches", "no currency markers here", "USD"},
		// USD is first in the rule table, so "$" decides before "S$" is
		// ever consulted.
		{"s-dollar text still matches usd first", "Total S$99.00", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCurrency(tt.text)
			if got != tt.want {
				t.Errorf("DetectCurrency(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Coffee   Shop  Purchase ", "Coffee Shop Purchase"},
		{"ACME* #1234 (ref)", "ACME 1234 ref"},
		{"co-op grocery.", "co-op grocery."},
		{"$$$", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := cleanDescription(tt.input)
		if got != tt.want {
			t.Errorf("cleanDescription(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
