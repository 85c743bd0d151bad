package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finlens/statement-parser/internal/models"
	"github.com/finlens/statement-parser/internal/parser"
	"github.com/finlens/statement-parser/internal/writer"
)

const version = "1.0.0"

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success     bool                            `json:"success"`
	Error       string                          `json:"error,omitempty"`
	DocumentID  string                          `json:"documentId,omitempty"`
	Statement   *models.ParsedStatement         `json:"statement,omitempty"`
	Diagnostics *models.ReadabilityDiagnostics  `json:"diagnostics,omitempty"`
	Readability string                          `json:"readability,omitempty"`
	Count       int                             `json:"count"`
	CSV         string                          `json:"csv,omitempty"`
	Version     string                          `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Engine *parser.Engine
	Log    *slog.Logger
}

// NewHandler wires an engine and logger into a handler. Both may be nil,
// in which case defaults are used.
func NewHandler(engine *parser.Engine, log *slog.Logger) *Handler {
	if engine == nil {
		engine = parser.New()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{Engine: engine, Log: log}
}

// Register sets up the API routes on the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleParse accepts a multipart upload (field "file", .csv or .pdf),
// runs the parsing engine, and returns the scored statement. Garbage
// content is still a 200 with a low document score — only transport-level
// problems map to error statuses.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".pdf" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unsupported file type %q. Upload a .csv or .pdf statement.", ext))
	}

	docID := uuid.NewString()
	h.Log.Info("parse request", "documentId", docID, "filename", fileHeader.Filename, "size", fileHeader.Size)

	resp := ParseResponse{
		Success:    true,
		DocumentID: docID,
		Version:    version,
	}

	switch ext {
	case ".csv":
		f, err := fileHeader.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
		}
		resp.Statement = h.Engine.ParseCSV(raw)

	case ".pdf":
		tmpFile, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
		}
		defer os.Remove(tmpFile.Name())
		tmpFile.Close()

		if err := c.SaveFile(fileHeader, tmpFile.Name()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}

		stmt, diag, class := h.Engine.ParsePDFFile(tmpFile.Name())
		resp.Statement = stmt
		resp.Diagnostics = &diag
		resp.Readability = string(class)
	}

	resp.Count = len(resp.Statement.Transactions)

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: true}
	if err := csvWriter.Write(&csvBuf, resp.Statement); err == nil {
		resp.CSV = csvBuf.String()
	}

	h.Log.Info("parse complete",
		"documentId", docID,
		"transactions", resp.Count,
		"documentScore", resp.Statement.DocumentScore)

	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success: false,
		Error:   msg,
	})
}
