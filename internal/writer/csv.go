package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/finlens/statement-parser/internal/models"
)

// CSVWriter writes a parsed statement to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.ParsedStatement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stmt)
}

// Write writes the statement in CSV format to the given writer. Sentinel
// header fields are omitted from the metadata rows.
func (w *CSVWriter) Write(out io.Writer, stmt *models.ParsedStatement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if stmt.Header.Bank != models.UnknownField {
			writer.Write([]string{"# Bank", stmt.Header.Bank})
		}
		if stmt.Header.CustomerAccount != models.UnknownField {
			writer.Write([]string{"# Account Number", stmt.Header.CustomerAccount})
		}
		if stmt.Header.StatementDate != models.UnknownField {
			writer.Write([]string{"# Statement Date", stmt.Header.StatementDate})
		}
		if stmt.Header.OpeningBalance != models.ZeroBalance {
			writer.Write([]string{"# Opening Balance", stmt.Header.OpeningBalance})
		}
		if stmt.Header.ClosingBalance != models.ZeroBalance {
			writer.Write([]string{"# Closing Balance", stmt.Header.ClosingBalance})
		}
		writer.Write([]string{"# Document Score", formatScore(stmt.DocumentScore)})
	}

	header := []string{"Date", "Description", "Amount", "Currency", "Confidence"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range stmt.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Amount,
			txn.Currency,
			formatScore(txn.RowScore),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
