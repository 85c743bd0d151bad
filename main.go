package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finlens/statement-parser/internal/api"
	"github.com/finlens/statement-parser/internal/extractor"
	"github.com/finlens/statement-parser/internal/models"
	"github.com/finlens/statement-parser/internal/parser"
	"github.com/finlens/statement-parser/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	addrFlag := flag.String("addr", ":8080", "Listen address for -serve (PORT env overrides)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV output")
	jsonFlag := flag.Bool("json", false, "Print the parsed statement as JSON instead of writing CSV")
	ocrFlag := flag.Bool("ocr", false, "Use Tesseract OCR for scanned documents (requires poppler-utils and tesseract-ocr)")
	verboseFlag := flag.Bool("verbose", false, "Log engine diagnostics to stderr")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Parser
Heuristic bank/credit-card statement extraction with confidence scoring.

Parses CSV and PDF statements into normalized transactions, each scored
for data quality, plus an aggregate document confidence score.

Usage:
  statement-parser [flags] <input.csv|input.pdf> [input2 ...]
  statement-parser -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a CSV statement, writing statement.csv next to it
  statement-parser statement.csv

  # Parse a PDF and print the structured result as JSON
  statement-parser -json statement.pdf

  # Run the HTTP API
  statement-parser -serve -addr :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-parser v%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verboseFlag {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := []parser.Option{parser.WithLogger(log)}
	if *ocrFlag {
		ocr := extractor.TesseractOCR{}
		if !ocr.Available() {
			fatalf("OCR requested but pdftoppm/tesseract are not on PATH\n")
		}
		opts = append(opts, parser.WithOCR(ocr))
	}
	engine := parser.New(opts...)

	if *serveFlag {
		serve(engine, log, *addrFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, *outputFlag, *headerFlag, *jsonFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(engine *parser.Engine, log *slog.Logger, addr string) {
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // 32MB uploads
	})
	h := api.NewHandler(engine, log)
	h.Register(app)

	log.Info("listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		fatalf("server failed: %v\n", err)
	}
}

func processFile(engine *parser.Engine, inputPath, outputPath string, includeHeader, asJSON bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	var stmt *models.ParsedStatement
	ext := strings.ToLower(filepath.Ext(inputPath))
	switch ext {
	case ".csv":
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		stmt = engine.ParseCSV(raw)
	case ".pdf":
		var diag models.ReadabilityDiagnostics
		var class models.Readability
		stmt, diag, class = engine.ParsePDFFile(inputPath)
		fmt.Printf("  Extracted %d page(s), readability: %s\n", diag.PageCount, class)
	default:
		return fmt.Errorf("expected .csv or .pdf file, got %q", ext)
	}

	fmt.Printf("  Found %d transaction(s)\n", len(stmt.Transactions))
	fmt.Printf("  Document confidence: %.5f\n", stmt.DocumentScore)

	if len(stmt.Transactions) == 0 {
		fmt.Println("  Warning: No transactions found. The statement format may not match expected patterns.")
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stmt)
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".parsed.csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, stmt); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)

	if stmt.Header.Bank != models.UnknownField {
		fmt.Printf("  Bank: %s\n", stmt.Header.Bank)
	}
	if stmt.Header.CustomerAccount != models.UnknownField {
		fmt.Printf("  Account number: %s\n", stmt.Header.CustomerAccount)
	}
	if stmt.Header.StatementDate != models.UnknownField {
		fmt.Printf("  Statement date: %s\n", stmt.Header.StatementDate)
	}

	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
