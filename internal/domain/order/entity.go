// internal/domain/order/entity.go
package order

import (
	"time"

	"hh-order-service/internal/domain/customer"
)

// Payment statuses that drive notification side effects. Other statuses may
// exist on an order but never trigger anything.
const (
	StatusPaymentPending   = "Payment pending"
	StatusPaymentConfirmed = "Payment confirmed"
	StatusPaymentFailed    = "Payment failed"
)

// Location is the service address attached to a booking.
type Location struct {
	Address string `json:"address" db:"address"`
	Area    string `json:"area" db:"area"`
	City    string `json:"city" db:"city"`
	Country string `json:"country" db:"country"`
}

// Package is the booked service offering.
type Package struct {
	Title string  `json:"title" db:"package_title"`
	Price float64 `json:"price" db:"package_price"`
}

// Order represents one service booking.
//
// OrderID is the human-readable prefixed identifier ("HH-915100"); DocumentID
// is the opaque stable identifier used for public download links. The two are
// deliberately distinct.
type Order struct {
	ID         int64  `json:"id" db:"id"`
	OrderID    string `json:"orderId" db:"order_id"`
	DocumentID string `json:"documentId" db:"document_id"`

	CustomerID int64              `json:"customerId" db:"customer_id"`
	Customer   *customer.Customer `json:"customer,omitempty" db:"-"`

	Location Location `json:"location"`
	Package  Package  `json:"package"`

	Price        float64 `json:"price" db:"price"`
	Total        float64 `json:"total" db:"total"`
	CurrencyCode string  `json:"currencyCode" db:"currency_code"`

	PaymentStatus string `json:"paymentStatus" db:"payment_status"`
	PaymentID     string `json:"paymentId" db:"payment_id"`
	ResponseID    string `json:"responseId" db:"response_id"`

	Locale string `json:"locale" db:"locale"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsActionableStatus reports whether a payment status participates in the
// notification state machine.
func IsActionableStatus(status string) bool {
	return status == StatusPaymentConfirmed || status == StatusPaymentFailed
}
