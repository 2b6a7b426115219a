// internal/domain/customer/repository.go
package customer

import "context"

// Repository is the narrow persistence contract for customers. Implementations
// return xerrors.ErrNotFound when no record matches.
type Repository interface {
	FindByPhoneAndCountry(ctx context.Context, phone, countryCode string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	UpdateEmail(ctx context.Context, id int64, email string) (*Customer, error)
}
