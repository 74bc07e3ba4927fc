// Package api exposes the parse engine and the submission pipeline over
// HTTP.
package api

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pesatrack/sms-parser/internal/ingest"
	"github.com/pesatrack/sms-parser/internal/models"
	"github.com/pesatrack/sms-parser/internal/parser"
	"github.com/pesatrack/sms-parser/internal/store"
	"github.com/pesatrack/sms-parser/internal/writer"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// SMSRequest is the JSON body for parse and submit endpoints.
type SMSRequest struct {
	SMSText string `json:"sms_text"`
	Sender  string `json:"sender"`
}

// ParseResponse is the JSON response from /api/parse.
type ParseResponse struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	Parsed  *models.ParsedTransaction `json:"parsed,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	engine *parser.Engine
	ingest *ingest.Service
	store  *store.Store
	log    zerolog.Logger
}

// New builds a Handler.
func New(engine *parser.Engine, svc *ingest.Service, st *store.Store, log zerolog.Logger) *Handler {
	return &Handler{engine: engine, ingest: svc, store: st, log: log}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/sms", h.HandleSubmit)
	app.Get("/api/transactions", h.HandleListTransactions)
	app.Get("/api/transactions.csv", h.HandleExportCSV)
	app.Get("/api/rejected", h.HandleListRejected)
	app.Get("/api/summary", h.HandleSummary)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleParse runs the extraction engine without touching storage.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	var req SMSRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	parsed, err := h.engine.Parse(req.SMSText, req.Sender)
	if errors.Is(err, parser.ErrEmptyMessage) {
		return writeError(c, fiber.StatusBadRequest, "sms_text is required")
	}
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(ParseResponse{Success: true, Parsed: parsed})
}

// HandleSubmit parses a submission and applies the accept/reject policy.
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	var req SMSRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	res, err := h.ingest.Handle(req.SMSText, req.Sender)
	if errors.Is(err, parser.ErrEmptyMessage) {
		return writeError(c, fiber.StatusBadRequest, "sms_text is required")
	}
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(res)
}

func (h *Handler) HandleListTransactions(c *fiber.Ctx) error {
	txns, err := h.store.ListTransactions(c.Query("provider"), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	if txns == nil {
		txns = []store.StoredTransaction{}
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"count":        len(txns),
		"transactions": txns,
	})
}

func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	txns, err := h.store.ListTransactions(c.Query("provider"), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	records := make([]models.ParsedTransaction, 0, len(txns))
	for _, txn := range txns {
		records = append(records, txn.ParsedTransaction)
	}

	var buf bytes.Buffer
	w := &writer.CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, records); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

func (h *Handler) HandleListRejected(c *fiber.Ctx) error {
	rejected, err := h.store.ListRejected(c.QueryInt("limit"))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rejected == nil {
		rejected = []store.RejectedSMS{}
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(rejected),
		"rejected": rejected,
	})
}

func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	sum, err := h.store.Summarize()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(sum)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
