// internal/repository/memory/customer_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"hh-order-service/internal/domain/customer"
	xerrors "hh-order-service/internal/pkg/errors"
)

// CustomerRepository is an in-memory customer.Repository used in tests.
type CustomerRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*customer.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		nextID: 1,
		byID:   make(map[int64]*customer.Customer),
	}
}

var _ customer.Repository = (*CustomerRepository)(nil)

func (r *CustomerRepository) FindByPhoneAndCountry(_ context.Context, phone, countryCode string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byID {
		if c.Phone == phone && c.CountryCode == countryCode {
			cp := *c
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Phone == c.Phone && existing.CountryCode == c.CountryCode {
			return xerrors.ErrDuplicateEntry
		}
	}

	c.ID = r.nextID
	r.nextID++
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *CustomerRepository) UpdateEmail(_ context.Context, id int64, email string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	c.Email = email
	c.UpdatedAt = time.Now()

	cp := *c
	return &cp, nil
}

// Count returns the number of stored customers.
func (r *CustomerRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
