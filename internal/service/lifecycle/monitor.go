// internal/service/lifecycle/monitor.go
package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"hh-order-service/internal/domain/order"
	"hh-order-service/internal/service/mailer"

	"go.uber.org/zap"
)

// DocumentGenerator renders (or returns the memoized) invoice for an order.
type DocumentGenerator interface {
	Generate(ctx context.Context, o *order.Order) (string, error)
}

// Dispatcher sends one transactional email.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *mailer.Message) error
}

// EventRecorder appends one audit entry.
type EventRecorder interface {
	Record(orderID, event string, metadata map[string]interface{}) error
}

type Config struct {
	BaseURL       string
	InternalEmail string
	ServiceName   string
}

// Monitor observes payment-status transitions and triggers the notification
// side effects. The status update itself always commits; document generation
// and dispatch are best-effort and their failures are logged, never
// propagated to the caller.
type Monitor struct {
	orders    order.Repository
	invoices  DocumentGenerator
	mail      Dispatcher
	templates *mailer.TemplateSet
	events    EventRecorder
	cfg       Config
	logger    *zap.Logger
}

func NewMonitor(
	orders order.Repository,
	invoices DocumentGenerator,
	mail Dispatcher,
	templates *mailer.TemplateSet,
	events EventRecorder,
	cfg Config,
	logger *zap.Logger,
) *Monitor {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "Healthy home"
	}
	return &Monitor{
		orders:    orders,
		invoices:  invoices,
		mail:      mail,
		templates: templates,
		events:    events,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetOrder fetches an order by its human-readable identifier.
func (s *Monitor) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return s.orders.FindByOrderID(ctx, orderID)
}

// GetOrderByDocumentID fetches an order by its opaque stable identifier.
func (s *Monitor) GetOrderByDocumentID(ctx context.Context, documentID string) (*order.Order, error) {
	return s.orders.FindByDocumentID(ctx, documentID)
}

// UpdatePaymentStatus persists the new status and evaluates the transition.
// Only arrivals at "Payment confirmed" or "Payment failed" from a different
// prior value trigger side effects; everything else is a plain update.
func (s *Monitor) UpdatePaymentStatus(ctx context.Context, orderID, status string) (*order.Order, error) {
	current, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdatePaymentStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if status == current.PaymentStatus || !order.IsActionableStatus(status) {
		return updated, nil
	}

	switch status {
	case order.StatusPaymentConfirmed:
		s.handleConfirmed(ctx, updated)
	case order.StatusPaymentFailed:
		s.handleFailed(ctx, updated)
	}

	return updated, nil
}

// SendConfirmation is the manual dispatch path: it regenerates (or reuses)
// the invoice and sends the customer-facing confirmation. Unlike the
// transition handling, errors propagate so the HTTP caller can surface them.
func (s *Monitor) SendConfirmation(ctx context.Context, orderID string) error {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	path, err := s.invoices.Generate(ctx, o)
	if err != nil {
		return fmt.Errorf("failed to generate invoice: %w", err)
	}

	if err := s.dispatchProfile(ctx, o, "order-confirmed", o.Locale, s.customerRecipient(o), s.attachment(o, path)); err != nil {
		return err
	}

	s.record(o.OrderID, "email_sent", map[string]interface{}{"profile": "customer", "manual": true})
	return nil
}

// handleConfirmed generates the invoice, then dispatches the localized
// customer profile and the fixed-English internal profile, each with the
// document attached. Strict sequencing: generation completes before any
// dispatch. Each profile is dispatched independently; one failing does not
// block the other.
func (s *Monitor) handleConfirmed(ctx context.Context, o *order.Order) {
	path, err := s.invoices.Generate(ctx, o)
	if err != nil {
		s.logger.Error("invoice generation failed",
			zap.String("order_id", o.OrderID),
			zap.Error(err),
		)
		s.record(o.OrderID, "generation_failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.record(o.OrderID, "invoice_generated", map[string]interface{}{"path": path})

	attachment := s.attachment(o, path)

	if err := s.dispatchProfile(ctx, o, "order-confirmed", o.Locale, s.customerRecipient(o), attachment); err != nil {
		s.logger.Error("customer confirmation dispatch failed",
			zap.String("order_id", o.OrderID),
			zap.Error(err),
		)
		s.record(o.OrderID, "email_failed", map[string]interface{}{"profile": "customer", "error": err.Error()})
	} else {
		s.record(o.OrderID, "email_sent", map[string]interface{}{"profile": "customer"})
	}

	if err := s.dispatchProfile(ctx, o, "order-confirmed-internal", mailer.DefaultLocale, s.cfg.InternalEmail, attachment); err != nil {
		s.logger.Error("internal confirmation dispatch failed",
			zap.String("order_id", o.OrderID),
			zap.Error(err),
		)
		s.record(o.OrderID, "email_failed", map[string]interface{}{"profile": "internal", "error": err.Error()})
	} else {
		s.record(o.OrderID, "email_sent", map[string]interface{}{"profile": "internal"})
	}
}

// handleFailed dispatches the internal-only alert, no document, no
// customer-facing message.
func (s *Monitor) handleFailed(ctx context.Context, o *order.Order) {
	if err := s.dispatchProfile(ctx, o, "order-failed-internal", mailer.DefaultLocale, s.cfg.InternalEmail, nil); err != nil {
		s.logger.Error("payment-failed alert dispatch failed",
			zap.String("order_id", o.OrderID),
			zap.Error(err),
		)
		s.record(o.OrderID, "email_failed", map[string]interface{}{"profile": "internal", "error": err.Error()})
		return
	}
	s.record(o.OrderID, "email_sent", map[string]interface{}{"profile": "internal"})
}

func (s *Monitor) dispatchProfile(ctx context.Context, o *order.Order, template, locale, recipient string, attachment *mailer.Attachment) error {
	if recipient == "" {
		return fmt.Errorf("no recipient for template %q", template)
	}

	rendered, err := s.templates.Render(template, locale, s.orderContext(o))
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		To:      []string{recipient},
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	}
	if attachment != nil {
		msg.Attachments = []mailer.Attachment{*attachment}
	}

	return s.mail.Dispatch(ctx, msg)
}

func (s *Monitor) orderContext(o *order.Order) mailer.OrderContext {
	ctx := mailer.OrderContext{
		OrderRef:    "#" + strings.ToUpper(o.OrderID),
		OrderID:     o.OrderID,
		ServiceName: s.cfg.ServiceName,
		DownloadURL: fmt.Sprintf("%s/download-invoice/download/%s", s.cfg.BaseURL, o.DocumentID),
	}
	if c := o.Customer; c != nil {
		ctx.CustomerName = c.FullName
		ctx.CustomerEmail = c.Email
		ctx.CustomerPhone = c.FullPhone()
	}
	return ctx
}

func (s *Monitor) customerRecipient(o *order.Order) string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Email
}

func (s *Monitor) attachment(o *order.Order, path string) *mailer.Attachment {
	return &mailer.Attachment{
		Filename:    fmt.Sprintf("invoice-%s.pdf", o.DocumentID),
		Path:        path,
		ContentType: "application/pdf",
	}
}

// record appends an audit entry; event-log failures are logged and swallowed,
// they never affect the order flow.
func (s *Monitor) record(orderID, event string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(orderID, event, metadata); err != nil {
		s.logger.Error("failed to record invoice event",
			zap.String("order_id", orderID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
