package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/finlens/statement-parser/internal/models"
)

// Column-heading keywords tested against a row's first cell by substring
// containment, case folded.
var headerCellKeywords = []string{
	"date", "transaction", "description", "amount", "debit",
	"credit", "txn", "details", "amt", "posting", "reference",
}

// detectDelimiter counts ',' against ';' over the first five non-empty
// lines of raw content and picks the more frequent, defaulting to ','.
// This is a character-frequency heuristic on the raw text, run before any
// quoting-aware parse.
func detectDelimiter(text string) rune {
	commas, semis, seen := 0, 0, 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		commas += strings.Count(line, ",")
		semis += strings.Count(line, ";")
		seen++
		if seen == 5 {
			break
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}

// isHeaderRow reports whether a row's first cell looks like a column
// heading rather than data.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	for _, kw := range headerCellKeywords {
		if strings.Contains(first, kw) {
			return true
		}
	}
	return false
}

// readRows parses the content with the detected delimiter. Rows that fail
// the CSV grammar are dropped individually; the read continues.
func (e *Engine) readRows(text string, delim rune) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			e.log.Debug("csv row rejected", "error", err)
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

// rowsToTransactions maps structured rows to transactions. The first three
// cells are read positionally as date, description, amount — column order
// is assumed fixed even when a header row was present. Rows with fewer
// than three cells are skipped, not errors.
func (e *Engine) rowsToTransactions(rows [][]string, currency string) []models.Transaction {
	var txns []models.Transaction
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			e.log.Debug("header row dropped", "cells", len(row))
			continue
		}
		if len(row) < 3 {
			e.log.Debug("row skipped: too few cells", "row", i, "cells", len(row))
			continue
		}
		txns = append(txns, models.Transaction{
			Date:        NormalizeDate(row[0]),
			Description: cleanDescription(row[1]),
			Amount:      NormalizeAmount(row[2]),
			Currency:    currency,
		})
	}
	return txns
}
