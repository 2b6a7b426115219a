package lifecycle

import (
	"context"
	"errors"
	"testing"

	"hh-order-service/internal/domain/customer"
	"hh-order-service/internal/domain/order"
	"hh-order-service/internal/repository/memory"
	"hh-order-service/internal/service/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const internalEmail = "services@healthyhome.app"

type fakeGenerator struct {
	path  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ *order.Order) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeDispatcher struct {
	sent []*mailer.Message
	// errs is consumed one per Dispatch call; nil entries mean success.
	errs []error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, msg *mailer.Message) error {
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	if err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRecorder struct {
	events []string
}

func (f *fakeRecorder) Record(_, event string, _ map[string]interface{}) error {
	f.events = append(f.events, event)
	return nil
}

type fixture struct {
	monitor    *Monitor
	orders     *memory.OrderRepository
	generator  *fakeGenerator
	dispatcher *fakeDispatcher
	recorder   *fakeRecorder
}

func newFixture(t *testing.T, locale string) *fixture {
	t.Helper()

	orders := memory.NewOrderRepository()
	o := &order.Order{
		OrderID:    "hh-915100",
		DocumentID: "01JDOC0000000000000000TEST",
		CustomerID: 7,
		Customer: &customer.Customer{
			ID:          7,
			FullName:    "Amina Hassan",
			Email:       "amina@example.com",
			Phone:       "501234567",
			CountryCode: "+971",
		},
		Package:       order.Package{Title: "Deep Clean", Price: 250},
		Price:         250,
		Total:         262.50,
		CurrencyCode:  "AED",
		PaymentStatus: order.StatusPaymentPending,
		Locale:        locale,
	}
	require.NoError(t, orders.Create(context.Background(), o))

	f := &fixture{
		orders:     orders,
		generator:  &fakeGenerator{path: "/tmp/invoice-hh-915100.pdf"},
		dispatcher: &fakeDispatcher{},
		recorder:   &fakeRecorder{},
	}
	f.monitor = NewMonitor(orders, f.generator, f.dispatcher, mailer.NewTemplateSet(), f.recorder, Config{
		BaseURL:       "http://localhost:8080",
		InternalEmail: internalEmail,
	}, zap.NewNop())
	return f
}

func TestUpdatePaymentStatus_ConfirmFlow(t *testing.T) {
	f := newFixture(t, "en")

	updated, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaymentConfirmed, updated.PaymentStatus)

	assert.Equal(t, 1, f.generator.calls, "invoice generated exactly once")
	require.Len(t, f.dispatcher.sent, 2, "customer + internal profiles")

	customerMsg := f.dispatcher.sent[0]
	assert.Equal(t, []string{"amina@example.com"}, customerMsg.To)
	assert.Contains(t, customerMsg.Subject, "#HH-915100", "subject carries the uppercased order id")
	require.Len(t, customerMsg.Attachments, 1)
	assert.Equal(t, "invoice-01JDOC0000000000000000TEST.pdf", customerMsg.Attachments[0].Filename)

	internalMsg := f.dispatcher.sent[1]
	assert.Equal(t, []string{internalEmail}, internalMsg.To)
	assert.Contains(t, internalMsg.Subject, "New booking alert")
	require.Len(t, internalMsg.Attachments, 1)

	assert.Equal(t, []string{"invoice_generated", "email_sent", "email_sent"}, f.recorder.events)
}

func TestUpdatePaymentStatus_ConfirmFlowArabicLocale(t *testing.T) {
	f := newFixture(t, "ar")

	_, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentConfirmed)
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 2)
	assert.Contains(t, f.dispatcher.sent[0].Subject, "تم تأكيد", "customer profile localized")
	assert.Contains(t, f.dispatcher.sent[1].Subject, "New booking alert", "internal profile stays English")
}

func TestUpdatePaymentStatus_UnknownLocaleFallsBack(t *testing.T) {
	f := newFixture(t, "fr")

	_, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentConfirmed)
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 2)
	assert.Contains(t, f.dispatcher.sent[0].Subject, "is Confirmed")
}

func TestUpdatePaymentStatus_FailureFlow(t *testing.T) {
	f := newFixture(t, "en")

	_, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentFailed)
	require.NoError(t, err)

	assert.Zero(t, f.generator.calls, "no document on payment failure")
	require.Len(t, f.dispatcher.sent, 1, "internal-only")
	msg := f.dispatcher.sent[0]
	assert.Equal(t, []string{internalEmail}, msg.To)
	assert.Contains(t, msg.Subject, "Payment failed")
	assert.Empty(t, msg.Attachments)
}

func TestUpdatePaymentStatus_TransitionGating(t *testing.T) {
	cases := []struct {
		name   string
		status string
	}{
		{"same value", order.StatusPaymentPending},
		{"non-actionable status", "Refund issued"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "en")

			updated, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", tc.status)
			require.NoError(t, err)

			assert.Equal(t, tc.status, updated.PaymentStatus, "update commits regardless")
			assert.Zero(t, f.generator.calls)
			assert.Empty(t, f.dispatcher.sent)
			assert.Empty(t, f.recorder.events)
		})
	}
}

func TestUpdatePaymentStatus_GenerationFailureDoesNotBlockUpdate(t *testing.T) {
	f := newFixture(t, "en")
	f.generator.err = errors.New("disk full")

	updated, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentConfirmed)
	require.NoError(t, err, "side-effect failures never fail the update")
	assert.Equal(t, order.StatusPaymentConfirmed, updated.PaymentStatus)

	// Verify via a subsequent read that the transition persisted.
	stored, err := f.orders.FindByOrderID(context.Background(), "hh-915100")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaymentConfirmed, stored.PaymentStatus)

	assert.Empty(t, f.dispatcher.sent, "no dispatch without a document")
	assert.Equal(t, []string{"generation_failed"}, f.recorder.events)
}

func TestUpdatePaymentStatus_ProfilesDispatchIndependently(t *testing.T) {
	f := newFixture(t, "en")
	f.dispatcher.errs = []error{errors.New("mailbox unavailable")} // customer send fails

	updated, err := f.monitor.UpdatePaymentStatus(context.Background(), "hh-915100", order.StatusPaymentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaymentConfirmed, updated.PaymentStatus)

	require.Len(t, f.dispatcher.sent, 1, "internal profile still dispatched")
	assert.Equal(t, []string{internalEmail}, f.dispatcher.sent[0].To)
	assert.Equal(t, []string{"invoice_generated", "email_failed", "email_sent"}, f.recorder.events)
}

func TestSendConfirmation_PropagatesErrors(t *testing.T) {
	f := newFixture(t, "en")
	f.generator.err = errors.New("render failed")

	err := f.monitor.SendConfirmation(context.Background(), "hh-915100")
	require.Error(t, err, "manual path surfaces failures to the HTTP caller")
	assert.Empty(t, f.dispatcher.sent)
}
