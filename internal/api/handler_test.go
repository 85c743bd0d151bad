package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	NewHandler(nil, nil).Register(app)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestParseEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/parse", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected non-200 for missing file")
	}
}

func TestParseEndpointRejectsUnknownExtension(t *testing.T) {
	app := setupTestApp()

	req := multipartRequest(t, "statement.xlsx", []byte("not supported"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestParseEndpointCSV(t *testing.T) {
	app := setupTestApp()

	content := "Date,Description,Amount\n2024-01-15,Coffee Shop Purchase,4.50\n2024-01-16,Grocery Store,85.23\n"
	req := multipartRequest(t, "statement.csv", []byte(content))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result ParseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Count != 2 {
		t.Errorf("count: got %d, want 2", result.Count)
	}
	if result.DocumentID == "" {
		t.Error("expected a generated document ID")
	}
	if result.Statement == nil {
		t.Fatal("expected a statement in the response")
	}
	if result.Statement.Transactions[0].Amount != "4.50" {
		t.Errorf("amount: got %q, want %q", result.Statement.Transactions[0].Amount, "4.50")
	}
	if result.CSV == "" {
		t.Error("expected CSV rendering in the response")
	}
}

func TestParseEndpointGarbageCSVStillSucceeds(t *testing.T) {
	// Valid transport with garbage content is a 200 with a zero score —
	// the document score is the quality signal, not the status code.
	app := setupTestApp()

	req := multipartRequest(t, "statement.csv", []byte("complete nonsense"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result ParseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Count != 0 {
		t.Errorf("count: got %d, want 0", result.Count)
	}
	if result.Statement.DocumentScore != 0 {
		t.Errorf("documentScore: got %f, want 0", result.Statement.DocumentScore)
	}
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
