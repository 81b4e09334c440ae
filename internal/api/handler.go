// Package api exposes the statement pipeline over HTTP.
package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/statement"
	"github.com/insightdelivered/statement-analyzer/internal/storage"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// exportWriter is the one method the handlers need from an export
// format; both writers implement it.
type exportWriter interface {
	WriteToFile(path string, stmt *models.Statement) error
}

// Handler carries the dependencies of the HTTP endpoints. The extract
// function and the export writers are fields so tests can stand in for
// real PDF parsing and real file output.
type Handler struct {
	store     *storage.Store
	processor *statement.Processor
	extract   func(path string) (string, error)
	csv       exportWriter
	xlsx      exportWriter
	log       zerolog.Logger
}

// NewHandler wires the default collaborators: the PDF extractor, a
// plain CSV export and a summary-bearing XLSX export.
func NewHandler(store *storage.Store, processor *statement.Processor, log zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		processor: processor,
		extract:   extractor.ExtractText,
		csv:       &writer.CSVWriter{},
		xlsx:      &writer.XLSXWriter{IncludeSummary: true},
		log:       log,
	}
}

// Register mounts the API routes on app. Middleware passed in runs in
// front of the statement-processing endpoint only.
func (h *Handler) Register(app *fiber.App, processMiddleware ...fiber.Handler) {
	g := app.Group("/api")
	g.Get("/health", h.HandleHealth)
	g.Post("/statements", append(processMiddleware, h.HandleProcess)...)
	g.Get("/statements/exports/csv/:name", h.HandleDownloadCSV)
	g.Get("/statements/exports/xlsx/:name", h.HandleDownloadXLSX)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleProcess accepts a statement as a multipart "file" (.pdf or
// .txt) or a raw "text" form value, runs the pipeline and writes both
// export formats. The response carries the summary, the transactions
// and the download paths.
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	text, name, err := h.statementText(c)
	if err != nil {
		return err
	}

	stmt, err := h.processor.Process(text)
	if err != nil {
		if errors.Is(err, statement.ErrEmptyInput) || errors.Is(err, statement.ErrNoTransactions) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return err
	}

	base := h.store.NewExportBase(name)
	csvPath := h.store.ExportPath(base, "csv")
	if err := h.csv.WriteToFile(csvPath, stmt); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	if err := h.xlsx.WriteToFile(h.store.ExportPath(base, "xlsx"), stmt); err != nil {
		// Do not leave a half-exported pair behind.
		os.Remove(csvPath)
		return fmt.Errorf("xlsx export: %w", err)
	}

	h.log.Info().
		Str("file", name).
		Str("export", base).
		Int("transactions", stmt.Summary.TotalTransactions).
		Msg("statement converted")

	return c.JSON(fiber.Map{
		"message":            "Statement processed successfully",
		"file":               base,
		"summary":            stmt.Summary,
		"total_transactions": stmt.Summary.TotalTransactions,
		"transactions":       stmt.Transactions,
		"download_csv":       "/api/statements/exports/csv/" + base,
		"download_xlsx":      "/api/statements/exports/xlsx/" + base,
	})
}

// HandleDownloadCSV serves a previously produced CSV export.
func (h *Handler) HandleDownloadCSV(c *fiber.Ctx) error {
	return h.download(c, "csv")
}

// HandleDownloadXLSX serves a previously produced XLSX export.
func (h *Handler) HandleDownloadXLSX(c *fiber.Ctx) error {
	return h.download(c, "xlsx")
}

func (h *Handler) download(c *fiber.Ctx, ext string) error {
	name := c.Params("name")
	path, err := h.store.ResolveExport(name, ext)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "export not found")
	}
	return c.Download(path, name+"."+ext)
}

// statementText resolves the input text for a processing request:
// either an uploaded file, which is stored before reading, or the raw
// "text" form value. A text value that is blank after trimming counts
// as missing input; the empty-statement outcome is reserved for
// uploads whose content turns out blank.
func (h *Handler) statementText(c *fiber.Ctx) (string, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if raw := c.FormValue("text"); strings.TrimSpace(raw) != "" {
			return raw, "statement", nil
		}
		return "", "", fiber.NewError(fiber.StatusBadRequest, "upload a statement file or supply a text field")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".txt" {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "unsupported file type: use .pdf or .txt")
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	path, err := h.store.SaveUpload(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	if ext == ".pdf" {
		text, err := h.extract(path)
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return text, fh.Filename, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading upload: %w", err)
	}
	return string(data), fh.Filename, nil
}
