package models

// Sentinel values marking a field the extractor never found.
// "Field absent" is equality to the sentinel, not an empty string —
// consumers deciding "was this found" must compare against these.
const (
	UnknownField = "unknown"
	ZeroBalance  = "0"
)

// Transaction is a single normalized statement transaction.
// Date is an ISO-8601 calendar date or "" when normalization failed.
// Amount is a signed decimal string with exactly two fraction digits.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	RowScore    float64 `json:"rowScore"`
}

// StatementHeader holds the metadata extracted from the top of a statement.
// Unfound fields keep their sentinel defaults.
type StatementHeader struct {
	Bank            string  `json:"bank"`
	BankAccount     string  `json:"bankAccount"`
	CustomerAccount string  `json:"customerAccount"`
	StatementDate   string  `json:"statementDate"`
	OpeningBalance  string  `json:"openingBalance"`
	ClosingBalance  string  `json:"closingBalance"`
	RowScore        float64 `json:"rowScore"`
}

// NewStatementHeader returns a header with every field at its sentinel.
func NewStatementHeader() StatementHeader {
	return StatementHeader{
		Bank:            UnknownField,
		BankAccount:     UnknownField,
		CustomerAccount: UnknownField,
		StatementDate:   UnknownField,
		OpeningBalance:  ZeroBalance,
		ClosingBalance:  ZeroBalance,
	}
}

// ParsedStatement is the terminal output of one parse invocation.
// Transactions keep document encounter order; nothing is deduplicated.
// DocumentScore is rounded to 5 decimal places.
type ParsedStatement struct {
	Header        StatementHeader `json:"header"`
	Transactions  []Transaction   `json:"transactions"`
	DocumentScore float64         `json:"documentScore"`
}

// ReadabilityDiagnostics are the per-parse text quality metrics that feed
// the readability classifier.
type ReadabilityDiagnostics struct {
	TextLength int     `json:"textLength"`
	DigitCount int     `json:"digitCount"`
	ASCIIRatio float64 `json:"asciiRatio"`
	PageCount  int     `json:"pageCount"`
}

// Readability classifies how usable a document's extracted text is.
type Readability string

const (
	ReadabilityText       Readability = "text"
	ReadabilityScanned    Readability = "scanned"
	ReadabilityUnreadable Readability = "unreadable"
)
