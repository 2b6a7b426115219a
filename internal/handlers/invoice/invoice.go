// internal/handlers/invoice/invoice.go
package invoice

import (
	"fmt"
	"net/http"

	xerrors "hh-order-service/internal/pkg/errors"
	"hh-order-service/internal/pkg/response"
	"hh-order-service/internal/service/eventlog"
	invoicesvc "hh-order-service/internal/service/invoice"
	"hh-order-service/internal/service/lifecycle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	monitor   *lifecycle.Monitor
	generator *invoicesvc.Generator
	events    *eventlog.Log
	baseURL   string
	logger    *zap.Logger
}

func NewInvoiceHandler(monitor *lifecycle.Monitor, generator *invoicesvc.Generator, events *eventlog.Log, baseURL string, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		monitor:   monitor,
		generator: generator,
		events:    events,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Generate triggers on-demand invoice generation for an order. Memoization
// makes repeated calls cheap and harmless.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	orderID := c.Param("orderId")

	o, err := h.monitor.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to generate invoice", nil)
		return
	}

	path, err := h.generator.Generate(c.Request.Context(), o)
	if err != nil {
		h.logger.Error("invoice generation failed", zap.String("order_id", orderID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to generate invoice", nil)
		return
	}

	h.record(orderID, "invoice_generated", map[string]interface{}{"path": path, "source": "on-demand"})

	response.Success(c, http.StatusOK, "invoice generated", gin.H{
		"orderId":     o.OrderID,
		"documentId":  o.DocumentID,
		"downloadUrl": fmt.Sprintf("%s/download-invoice/download/%s", h.baseURL, o.DocumentID),
	})
}

// Download streams the invoice bytes for the given stable document id,
// generating first when no file exists yet.
func (h *InvoiceHandler) Download(c *gin.Context) {
	documentID := c.Param("id")

	o, err := h.monitor.GetOrderByDocumentID(c.Request.Context(), documentID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "invoice not found")
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to download invoice", nil)
		return
	}

	path, err := h.generator.Generate(c.Request.Context(), o)
	if err != nil {
		h.logger.Error("invoice generation failed", zap.String("order_id", o.OrderID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to download invoice", nil)
		return
	}

	h.record(o.OrderID, "invoice_downloaded", map[string]interface{}{"documentId": documentID})

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, fmt.Sprintf("invoice-%s.pdf", o.OrderID))
}

type sendEmailRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// SendEmail manually triggers the customer confirmation dispatch
// (operational/debug path).
func (h *InvoiceHandler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.monitor.SendConfirmation(c.Request.Context(), req.OrderID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		h.logger.Error("manual dispatch failed", zap.String("order_id", req.OrderID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to send email", nil)
		return
	}

	response.Success(c, http.StatusOK, "email sent", nil)
}

// Events returns the audit trail for one order, in chronological order.
func (h *InvoiceHandler) Events(c *gin.Context) {
	entries, err := h.events.Query(c.Param("orderId"))
	if err != nil {
		h.logger.Error("failed to query event log", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to query events", nil)
		return
	}

	response.Success(c, http.StatusOK, "events", entries)
}

func (h *InvoiceHandler) record(orderID, event string, metadata map[string]interface{}) {
	if err := h.events.Record(orderID, event, metadata); err != nil {
		h.logger.Error("failed to record invoice event",
			zap.String("order_id", orderID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
