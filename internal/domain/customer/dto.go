// internal/domain/customer/dto.go
package customer

// ResolveRequest carries the customer details submitted with an order.
type ResolveRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	CountryCode string `json:"countryCode" binding:"required"`
}
