// internal/service/invoice/layout.go
package invoice

import (
	"fmt"
	"time"

	"hh-order-service/internal/domain/order"
)

// The layout is a declarative list of draw instructions at fixed A4
// millimetre coordinates, so the rendering backend can be swapped without
// touching layout logic.

type OpKind int

const (
	OpRect OpKind = iota
	OpLine
	OpText
)

type RGB struct {
	R, G, B int
}

type DrawOp struct {
	Kind OpKind

	X, Y   float64
	W, H   float64 // rects
	X2, Y2 float64 // lines

	Text  string
	Size  float64
	Bold  bool
	Align string // "" left-aligned at X, "C" centered across the page

	Color RGB // text / line color
	Fill  RGB // rect fill
}

var (
	brandPink = RGB{R: 233, G: 30, B: 99}
	white     = RGB{R: 255, G: 255, B: 255}
	black     = RGB{R: 0, G: 0, B: 0}
	lightGrey = RGB{R: 249, G: 249, B: 249}
	midGrey   = RGB{R: 100, G: 100, B: 100}
)

// invoiceData is the flattened view of an order that the layout consumes.
// Missing optional fields arrive already replaced with "N/A".
type invoiceData struct {
	OrderID       string
	InvoiceDate   string
	OrderDate     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	AddressLine   string
	Country       string
	ServiceTitle  string
	PaymentStatus string
	Currency      string
	Price         float64
	Total         float64
}

func buildInvoiceData(o *order.Order) invoiceData {
	d := invoiceData{
		OrderID:       o.OrderID,
		InvoiceDate:   time.Now().Format("1/2/2006"),
		OrderDate:     formatDate(o.CreatedAt),
		CustomerName:  "N/A",
		CustomerEmail: "N/A",
		CustomerPhone: "N/A",
		ServiceTitle:  orNA(o.Package.Title),
		PaymentStatus: orNA(o.PaymentStatus),
		Currency:      o.CurrencyCode,
		Price:         o.Price,
		Total:         o.Total,
	}

	if d.Currency == "" {
		d.Currency = "AED"
	}

	if c := o.Customer; c != nil {
		d.CustomerName = orNA(c.FullName)
		d.CustomerEmail = orNA(c.Email)
		if c.Phone != "" {
			d.CustomerPhone = c.CountryCode + " " + c.Phone
		}
	}

	d.AddressLine = fmt.Sprintf("%s, %s, %s",
		orNA(o.Location.Address), orNA(o.Location.Area), orNA(o.Location.City))
	d.Country = orNA(o.Location.Country)

	return d
}

// invoiceLayout produces the fixed single-page layout: header band, invoice
// metadata, customer block, service block, pricing summary with a highlighted
// total row, footer.
func invoiceLayout(d invoiceData) []DrawOp {
	money := func(v float64) string {
		return fmt.Sprintf("%s %.2f", d.Currency, v)
	}

	ops := []DrawOp{
		// Header band
		{Kind: OpRect, X: 0, Y: 0, W: 210, H: 40, Fill: brandPink},
		{Kind: OpText, X: 20, Y: 25, Text: "HEALTHY HOME", Size: 24, Bold: true, Color: white},
		{Kind: OpText, X: 150, Y: 25, Text: "INVOICE", Size: 28, Bold: true, Color: white},

		// Invoice metadata
		{Kind: OpText, X: 20, Y: 50, Text: "Order ID: " + d.OrderID, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 56, Text: "Date: " + d.InvoiceDate, Size: 10, Color: black},

		// Customer information block
		{Kind: OpText, X: 20, Y: 70, Text: "Customer Information", Size: 14, Bold: true, Color: brandPink},
		{Kind: OpLine, X: 20, Y: 72, X2: 190, Y2: 72, Color: brandPink},
		{Kind: OpText, X: 20, Y: 82, Text: "Customer: " + d.CustomerName, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 88, Text: "Email: " + d.CustomerEmail, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 94, Text: "Phone: " + d.CustomerPhone, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 100, Text: "Location: " + d.AddressLine, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 106, Text: "Country: " + d.Country, Size: 10, Color: black},

		// Service detail block
		{Kind: OpText, X: 20, Y: 115, Text: "Service Details", Size: 14, Bold: true, Color: brandPink},
		{Kind: OpLine, X: 20, Y: 117, X2: 190, Y2: 117, Color: brandPink},
		{Kind: OpText, X: 20, Y: 127, Text: "Service: " + d.ServiceTitle, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 133, Text: "Order Date: " + d.OrderDate, Size: 10, Color: black},
		{Kind: OpText, X: 20, Y: 139, Text: "Payment Status: " + d.PaymentStatus, Size: 10, Color: black},

		// Pricing summary box
		{Kind: OpRect, X: 20, Y: 160, W: 170, H: 40, Fill: lightGrey},
		{Kind: OpText, X: 30, Y: 172, Text: "Service Price:", Size: 11, Color: black},
		{Kind: OpText, X: 160, Y: 172, Text: money(d.Price), Size: 11, Color: black},

		// Highlighted total row
		{Kind: OpRect, X: 20, Y: 178, W: 170, H: 10, Fill: brandPink},
		{Kind: OpText, X: 30, Y: 185, Text: "Total Amount:", Size: 14, Bold: true, Color: white},
		{Kind: OpText, X: 160, Y: 185, Text: money(d.Total), Size: 14, Bold: true, Color: white},

		// Footer
		{Kind: OpText, Y: 270, Text: "Healthy Home Services - home care you can count on", Size: 9, Align: "C", Color: midGrey},
		{Kind: OpText, Y: 276, Text: "Thank you for your business!", Size: 9, Align: "C", Color: midGrey},
	}

	return ops
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
