package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() OrderContext {
	return OrderContext{
		OrderRef:      "#HH-915100",
		OrderID:       "HH-915100",
		CustomerName:  "Amina Hassan",
		CustomerEmail: "amina@example.com",
		CustomerPhone: "+971501234567",
		ServiceName:   "Healthy home",
		DownloadURL:   "http://localhost:8080/download-invoice/download/01JDOC",
	}
}

func TestRender_ConfirmedEnglish(t *testing.T) {
	ts := NewTemplateSet()

	r, err := ts.Render("order-confirmed", "en", testContext())
	require.NoError(t, err)

	assert.Contains(t, r.Subject, "#HH-915100")
	assert.Contains(t, r.Text, "Amina Hassan")
	assert.Contains(t, r.Text, "http://localhost:8080/download-invoice/download/01JDOC")
	assert.Contains(t, r.HTML, `href="http://localhost:8080/download-invoice/download/01JDOC"`)
}

func TestRender_ConfirmedArabic(t *testing.T) {
	ts := NewTemplateSet()

	r, err := ts.Render("order-confirmed", "ar", testContext())
	require.NoError(t, err)

	assert.Contains(t, r.Subject, "تم تأكيد")
	assert.Contains(t, r.Subject, "#HH-915100")
	assert.Contains(t, r.HTML, `dir="rtl"`)
}

func TestRender_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	ts := NewTemplateSet()

	fallback, err := ts.Render("order-confirmed", "de", testContext())
	require.NoError(t, err)
	english, err := ts.Render("order-confirmed", "en", testContext())
	require.NoError(t, err)

	assert.Equal(t, english.Subject, fallback.Subject)
	assert.Equal(t, english.Text, fallback.Text)
}

func TestRender_InternalProfiles(t *testing.T) {
	ts := NewTemplateSet()

	confirmed, err := ts.Render("order-confirmed-internal", "en", testContext())
	require.NoError(t, err)
	assert.Contains(t, confirmed.Subject, "New booking alert")
	assert.Contains(t, confirmed.Text, "amina@example.com")

	failed, err := ts.Render("order-failed-internal", "en", testContext())
	require.NoError(t, err)
	assert.Contains(t, failed.Subject, "Payment failed")
	assert.Contains(t, failed.Subject, "#HH-915100")
}

func TestRender_UnknownTemplateErrors(t *testing.T) {
	ts := NewTemplateSet()

	_, err := ts.Render("no-such-template", "en", testContext())
	require.Error(t, err)
}

func TestRender_HTMLEscapesCustomerInput(t *testing.T) {
	ts := NewTemplateSet()

	ctx := testContext()
	ctx.CustomerName = `<script>alert("x")</script>`

	r, err := ts.Render("order-confirmed", "en", ctx)
	require.NoError(t, err)
	assert.NotContains(t, r.HTML, "<script>")
}
