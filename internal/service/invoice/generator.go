// internal/service/invoice/generator.go
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hh-order-service/internal/domain/order"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// Generator renders invoice PDFs with on-disk memoization: the existence of a
// file at the canonical path is proof of prior generation and the render is
// skipped. Invoices are immutable once generated, even if the underlying
// order data later changes.
type Generator struct {
	dir    string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGenerator writes invoices under <publicDir>/uploads/invoices.
func NewGenerator(publicDir string, logger *zap.Logger) *Generator {
	return &Generator{
		dir:    filepath.Join(publicDir, "uploads", "invoices"),
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Path returns the canonical invoice path for an order identifier.
func (g *Generator) Path(orderID string) string {
	return filepath.Join(g.dir, fmt.Sprintf("invoice-%s.pdf", orderID))
}

// Exists reports whether an invoice has already been generated.
func (g *Generator) Exists(orderID string) bool {
	_, err := os.Stat(g.Path(orderID))
	return err == nil
}

// Generate renders the invoice for the order and returns its path. Repeated
// calls for the same order identifier return the existing file untouched.
// A per-identifier mutex plus a write-to-temp-then-rename make first-time
// generation safe under concurrency: readers never observe a partial file and
// at most one render happens per identifier.
func (g *Generator) Generate(ctx context.Context, o *order.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lock := g.lockFor(o.OrderID)
	lock.Lock()
	defer lock.Unlock()

	pdfPath := g.Path(o.OrderID)
	if _, err := os.Stat(pdfPath); err == nil {
		g.logger.Info("invoice already exists", zap.String("order_id", o.OrderID))
		return pdfPath, nil
	}

	raw, err := render(invoiceLayout(buildInvoiceData(o)))
	if err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	tmp, err := os.CreateTemp(g.dir, "invoice-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close invoice file: %w", err)
	}
	if err := os.Rename(tmp.Name(), pdfPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize invoice: %w", err)
	}

	g.logger.Info("invoice generated", zap.String("order_id", o.OrderID), zap.String("path", pdfPath))
	return pdfPath, nil
}

func (g *Generator) lockFor(orderID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, ok := g.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		g.locks[orderID] = m
	}
	return m
}

// render executes the draw instructions against the fpdf backend and returns
// the document bytes.
func render(ops []DrawOp) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, op := range ops {
		switch op.Kind {
		case OpRect:
			pdf.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
			pdf.Rect(op.X, op.Y, op.W, op.H, "F")

		case OpLine:
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.SetLineWidth(0.5)
			pdf.Line(op.X, op.Y, op.X2, op.Y2)

		case OpText:
			style := ""
			if op.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, op.Size)
			pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)

			if op.Align == "C" {
				pdf.SetXY(10, op.Y-4)
				pdf.CellFormat(190, 8, op.Text, "", 0, "C", false, 0, "")
			} else {
				pdf.Text(op.X, op.Y, op.Text)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
