// internal/service/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// DefaultLocale is used when an order carries no locale tag or an
// unrecognized one.
const DefaultLocale = "en"

// OrderContext is the structured data every email template receives.
type OrderContext struct {
	OrderRef      string // "#HH-915100" (uppercased, hash-prefixed)
	OrderID       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	DownloadURL   string
}

// Rendered holds the three outputs of one template render.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

type templateEntry struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

// TemplateSet renders transactional email bodies keyed by
// (template name, locale), falling back to the base locale when the requested
// one is not defined.
type TemplateSet struct {
	entries map[string]*templateEntry
}

// NewTemplateSet parses the built-in template definitions. It panics on a
// malformed definition, which can only happen at development time.
func NewTemplateSet() *TemplateSet {
	ts := &TemplateSet{entries: make(map[string]*templateEntry)}
	for key, def := range definitions {
		ts.entries[key] = &templateEntry{
			subject: texttemplate.Must(texttemplate.New(key + ":subject").Parse(def.subject)),
			text:    texttemplate.Must(texttemplate.New(key + ":text").Parse(def.text)),
			html:    htmltemplate.Must(htmltemplate.New(key + ":html").Parse(def.html)),
		}
	}
	return ts
}

// Render executes the named template in the given locale against ctx.
func (ts *TemplateSet) Render(name, locale string, ctx OrderContext) (*Rendered, error) {
	entry, ok := ts.entries[name+"/"+locale]
	if !ok {
		entry, ok = ts.entries[name+"/"+DefaultLocale]
	}
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", name)
	}

	var subject, text, html bytes.Buffer
	if err := entry.subject.Execute(&subject, ctx); err != nil {
		return nil, fmt.Errorf("failed to render subject for %q: %w", name, err)
	}
	if err := entry.text.Execute(&text, ctx); err != nil {
		return nil, fmt.Errorf("failed to render text body for %q: %w", name, err)
	}
	if err := entry.html.Execute(&html, ctx); err != nil {
		return nil, fmt.Errorf("failed to render html body for %q: %w", name, err)
	}

	return &Rendered{
		Subject: subject.String(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

type definition struct {
	subject string
	text    string
	html    string
}

var definitions = map[string]definition{
	"order-confirmed/en": {
		subject: "Your Healthy Home Service Order {{.OrderRef}} is Confirmed 🎉",
		text: `Dear {{.CustomerName}},

Thank you for booking your service with Healthy Home.

We're happy to let you know that your service order {{.OrderRef}} has been successfully confirmed.

Please find attached the invoice for your order, or download it here: {{.DownloadURL}}

We'll be in touch shortly to guide you through the next steps and make sure everything goes smoothly.

We're here to support you and can't wait to make this part of your journey a little easier.

Warmly,
The Healthy Home Team`,
		html: `<html>
  <body>
    Dear {{.CustomerName}},<br/><br/>

    Thank you for booking your service with Healthy Home.<br/><br/>

    We're happy to let you know that your service order <b>{{.OrderRef}}</b> has been successfully confirmed.<br/><br/>

    <a href="{{.DownloadURL}}">Download Invoice</a><br/><br/>

    We'll be in touch shortly to guide you through the next steps and make sure everything goes smoothly.<br/><br/>

    We're here to support you and can't wait to make this part of your journey a little easier.<br/><br/>

    Warmly,<br/>
    The Healthy Home Team
  </body>
</html>`,
	},

	"order-confirmed/ar": {
		subject: "تم تأكيد طلب خدمتك {{.OrderRef}} في هيلثي هوم 🎉",
		text: `،{{.CustomerName}} أهلًا

.شكرًا لاختيارك خدمات هيلثي هوم

.يسعدنا إبلاغك بأن طلب الخدمة رقم {{.OrderRef}} قد تم تأكيده بنجاح

.يمكنك تحميل فاتورتك من هنا: {{.DownloadURL}}

.سيتواصل معك فريقنا قريبًا لشرح الخطوات التالية والتأكد من أن كل شيء يسير بكل سهولة

،من القلب
فريق هيلثي هوم`,
		html: `<html lang="ar" dir="rtl">
  <body style="text-align: right;">
    ،{{.CustomerName}} أهلًا<br/><br/>

    .شكرًا لاختيارك خدمات هيلثي هوم<br/><br/>

    .يسعدنا إبلاغك بأن طلب الخدمة رقم {{.OrderRef}} قد تم تأكيده بنجاح<br/><br/>

    <a href="{{.DownloadURL}}">تحميل الفاتورة</a><br/><br/>

    .سيتواصل معك فريقنا قريبًا لشرح الخطوات التالية والتأكد من أن كل شيء يسير بكل سهولة<br/><br/>

    ،من القلب<br/>
    فريق هيلثي هوم
  </body>
</html>`,
	},

	"order-confirmed-internal/en": {
		subject: "New booking alert - {{.ServiceName}} - {{.OrderRef}}",
		text: `Hello Team,
A new booking has been successfully received and requires processing.

Booking Details:

Booking ID: {{.OrderID}}

Service: {{.ServiceName}}

Customer Details:

Customer Name: {{.CustomerName}}

Customer Email: {{.CustomerEmail}}

Customer Phone: {{.CustomerPhone}}

Please review and take the necessary next steps.

Thank you,

Healthy Home`,
		html: `<html>
  <body>
    Hello Team,<br/><br/>
    A new booking has been successfully received and requires processing.<br/><br/>

    <b>Booking Details:</b>
    <ul>
      <li><b>Booking ID:</b> {{.OrderID}}</li>
      <li><b>Service:</b> {{.ServiceName}}</li>
    </ul>

    <b>Customer Details:</b>
    <ul>
      <li><b>Customer Name:</b> {{.CustomerName}}</li>
      <li><b>Customer Email:</b> {{.CustomerEmail}}</li>
      <li><b>Customer Phone:</b> {{.CustomerPhone}}</li>
    </ul>

    Please review and take the necessary next steps.<br/><br/>

    Thank you,<br/>
    Healthy Home
  </body>
</html>`,
	},

	"order-failed-internal/en": {
		subject: "Payment failed - {{.ServiceName}} - {{.OrderRef}}",
		text: `Hello Team,
Payment failed for booking {{.OrderRef}}.

Booking Details:

Booking ID: {{.OrderID}}

Service: {{.ServiceName}}

Customer Details:

Customer Name: {{.CustomerName}}

Customer Email: {{.CustomerEmail}}

Customer Phone: {{.CustomerPhone}}

Please review and take the necessary next steps.

Thank you,

Healthy Home`,
		html: `<html>
  <body>
    Hello Team,<br/><br/>
    Payment failed for booking {{.OrderRef}}.<br/><br/>

    <b>Booking Details:</b>
    <ul>
      <li><b>Booking ID:</b> {{.OrderID}}</li>
      <li><b>Service:</b> {{.ServiceName}}</li>
    </ul>

    <b>Customer Details:</b>
    <ul>
      <li><b>Customer Name:</b> {{.CustomerName}}</li>
      <li><b>Customer Email:</b> {{.CustomerEmail}}</li>
      <li><b>Customer Phone:</b> {{.CustomerPhone}}</li>
    </ul>

    Please review and take the necessary next steps.<br/><br/>

    Thank you,<br/>
    Healthy Home
  </body>
</html>`,
	},
}
