// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"hh-order-service/internal/domain/customer"
	xerrors "hh-order-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ customer.Repository = (*CustomerRepository)(nil)

// FindByPhoneAndCountry retrieves the customer matching the natural key.
func (r *CustomerRepository) FindByPhoneAndCountry(ctx context.Context, phone, countryCode string) (*customer.Customer, error) {
	query := `
		SELECT id, full_name, email, phone, country_code, created_at, updated_at
		FROM customers
		WHERE phone = $1 AND country_code = $2
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, phone, countryCode).Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CountryCode,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (full_name, email, phone, country_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.FullName, c.Email, c.Phone, c.CountryCode,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// UpdateEmail refreshes the stored email (latest-write-wins) and returns the
// updated record.
func (r *CustomerRepository) UpdateEmail(ctx context.Context, id int64, email string) (*customer.Customer, error) {
	query := `
		UPDATE customers
		SET email = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, email, phone, country_code, created_at, updated_at
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id, email).Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CountryCode,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer email: %w", err)
	}

	return &c, nil
}
