// internal/domain/customer/entity.go
package customer

import (
	"time"
)

// Customer is keyed by the (phone, country code) pair, not by email.
// Email is mutable and always refreshed to the latest submitted value.
type Customer struct {
	ID          int64  `json:"id" db:"id"`
	FullName    string `json:"full_name" db:"full_name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	CountryCode string `json:"country_code" db:"country_code"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullPhone returns the dialable number including the country code.
func (c *Customer) FullPhone() string {
	return c.CountryCode + c.Phone
}
