// internal/domain/order/dto.go
package order

import "hh-order-service/internal/domain/customer"

// CreateOrderRequest is the inbound order-creation payload.
type CreateOrderRequest struct {
	Customer customer.ResolveRequest `json:"customer" binding:"required"`
	Location Location                `json:"location"`
	Package  Package                 `json:"package"`

	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	CurrencyCode string  `json:"currencyCode"`
	PaymentID    string  `json:"paymentId"`
	ResponseID   string  `json:"responseId"`
	Locale       string  `json:"locale"`
}

// Draft carries everything an order needs except the identifiers, which the
// allocator mints as part of creation.
type Draft struct {
	CustomerID   int64
	Location     Location
	Package      Package
	Price        float64
	Total        float64
	CurrencyCode string
	PaymentID    string
	ResponseID   string
	Locale       string
}

// UpdatePaymentStatusRequest drives the order lifecycle monitor.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}
