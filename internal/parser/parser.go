// Package parser turns raw statement content — delimited text or a PDF's
// reconstructed text layer — into a normalized, confidence-scored
// ParsedStatement. Every heuristic is a deterministic ordered rule list,
// and every code path terminates with a fully formed statement: content
// problems lower scores, they never raise errors.
package parser

import (
	"io"
	"log/slog"
	"strings"

	"github.com/finlens/statement-parser/internal/extractor"
	"github.com/finlens/statement-parser/internal/models"
)

// Engine is the statement parsing engine. It is stateless across
// invocations and safe for concurrent use on independent documents.
type Engine struct {
	log *slog.Logger
	ocr extractor.TextExtractor
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured diagnostic sink. Without one the
// engine runs silently and produces identical results.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithOCR substitutes the OCR collaborator consulted for scanned
// documents. The default always reports unsupported.
func WithOCR(t extractor.TextExtractor) Option {
	return func(e *Engine) { e.ocr = t }
}

// New returns an Engine with the stub OCR variant and no log sink.
func New(opts ...Option) *Engine {
	e := &Engine{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ocr: extractor.StubOCR{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ParseCSV parses delimited statement content. Empty or malformed input
// degrades to an all-sentinel header with no transactions and a document
// score of zero.
func (e *Engine) ParseCSV(raw []byte) *models.ParsedStatement {
	text := string(raw)
	delim := detectDelimiter(text)
	rows := e.readRows(text, delim)
	currency := DetectCurrency(text)
	txns := e.rowsToTransactions(rows, currency)
	header := extractHeader(strings.Split(text, "\n"))

	e.log.Debug("csv parsed",
		"delimiter", string(delim),
		"rows", len(rows),
		"transactions", len(txns),
		"currency", currency)

	return e.scoreStatement(header, txns)
}

// ParsePDF parses pre-extracted positioned text fragments.
func (e *Engine) ParsePDF(pages []extractor.Page) *models.ParsedStatement {
	stmt, _, _ := e.ParsePDFWithDiagnostics(pages)
	return stmt
}

// ParsePDFWithDiagnostics additionally exposes the reconstruction
// diagnostics and readability class as inspectable intermediates. With no
// file on disk there is nothing for OCR to re-read, so scanned and
// unreadable documents are parsed with whatever text was reconstructed.
func (e *Engine) ParsePDFWithDiagnostics(pages []extractor.Page) (*models.ParsedStatement, models.ReadabilityDiagnostics, models.Readability) {
	text, diag := extractor.Reconstruct(pages)
	class := extractor.Classify(diag)

	e.log.Debug("text reconstructed",
		"pages", diag.PageCount,
		"textLength", diag.TextLength,
		"digitCount", diag.DigitCount,
		"asciiRatio", diag.ASCIIRatio,
		"readability", string(class))

	return e.parseText(text), diag, class
}

// ParsePDFFile extracts, reconstructs, classifies and parses a PDF on
// disk. A document the library cannot open degrades to empty text and
// zero diagnostics. When the text layer classifies as scanned or
// unreadable the OCR collaborator is consulted; its failure (the default
// stub always fails) means proceeding with the reconstructed text.
func (e *Engine) ParsePDFFile(path string) (*models.ParsedStatement, models.ReadabilityDiagnostics, models.Readability) {
	pages, err := extractor.ExtractFragments(path)
	if err != nil {
		e.log.Warn("fragment extraction failed, proceeding with empty text", "error", err)
		pages = nil
	}

	text, diag := extractor.Reconstruct(pages)
	class := extractor.Classify(diag)

	e.log.Debug("text reconstructed",
		"pages", diag.PageCount,
		"textLength", diag.TextLength,
		"digitCount", diag.DigitCount,
		"asciiRatio", diag.ASCIIRatio,
		"readability", string(class))

	if class != models.ReadabilityText {
		ocrPages, ocrErr := e.ocr.ExtractPages(path)
		if ocrErr != nil {
			e.log.Debug("OCR unavailable, proceeding with extracted text",
				"extractor", e.ocr.Name(), "error", ocrErr)
		} else {
			e.log.Debug("OCR text substituted", "extractor", e.ocr.Name(), "pages", len(ocrPages))
			text = strings.Join(ocrPages, "\n\n")
		}
	}

	return e.parseText(text), diag, class
}

// parseText runs the line-based header and transaction extractors over
// reconstructed text. Currency is detected once from the whole document
// and applied uniformly to every transaction.
func (e *Engine) parseText(text string) *models.ParsedStatement {
	lines := strings.Split(text, "\n")
	header := extractHeader(lines)
	currency := DetectCurrency(text)
	txns := e.extractTransactions(lines, currency)
	return e.scoreStatement(header, txns)
}
