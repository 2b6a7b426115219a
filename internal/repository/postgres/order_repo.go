// internal/repository/postgres/order_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"hh-order-service/internal/domain/customer"
	"hh-order-service/internal/domain/order"
	xerrors "hh-order-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ order.Repository = (*OrderRepository)(nil)

const orderColumns = `
	o.id, o.order_id, o.document_id, o.customer_id,
	o.address, o.area, o.city, o.country,
	o.package_title, o.package_price,
	o.price, o.total, o.currency_code,
	o.payment_status, o.payment_id, o.response_id, o.locale,
	o.created_at, o.updated_at,
	c.id, c.full_name, c.email, c.phone, c.country_code, c.created_at, c.updated_at
`

const orderJoin = `
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
`

// Create inserts a new order. A uniqueness violation on order_id is reported
// as xerrors.ErrDuplicateEntry so the allocator can retry.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			order_id, document_id, customer_id,
			address, area, city, country,
			package_title, package_price,
			price, total, currency_code,
			payment_status, payment_id, response_id, locale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		o.OrderID, o.DocumentID, o.CustomerID,
		o.Location.Address, o.Location.Area, o.Location.City, o.Location.Country,
		o.Package.Title, o.Package.Price,
		o.Price, o.Total, o.CurrencyCode,
		o.PaymentStatus, o.PaymentID, o.ResponseID, o.Locale,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// FindLastByPrefix returns the most recent order whose order_id shares the
// prefix, sorted descending on the identifier string.
func (r *OrderRepository) FindLastByPrefix(ctx context.Context, prefix string) (*order.Order, error) {
	query := `SELECT ` + orderColumns + orderJoin + `
		WHERE o.order_id LIKE $1 || '%'
		ORDER BY o.order_id DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, prefix))
}

// FindByOrderID retrieves an order by its human-readable identifier,
// populated with its customer.
func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	query := `SELECT ` + orderColumns + orderJoin + ` WHERE o.order_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, orderID))
}

// FindByDocumentID retrieves an order by its opaque stable identifier.
func (r *OrderRepository) FindByDocumentID(ctx context.Context, documentID string) (*order.Order, error) {
	query := `SELECT ` + orderColumns + orderJoin + ` WHERE o.document_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, documentID))
}

// UpdatePaymentStatus persists the new payment status and returns the updated
// order. The status change always commits; notification side effects are the
// lifecycle monitor's concern.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, orderID, status string) (*order.Order, error) {
	query := `
		UPDATE orders SET payment_status = $2, updated_at = NOW()
		WHERE order_id = $1
	`

	tag, err := r.db.Exec(ctx, query, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, xerrors.ErrNotFound
	}

	return r.FindByOrderID(ctx, orderID)
}

func (r *OrderRepository) scanOne(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var cust customer.Customer

	err := row.Scan(
		&o.ID, &o.OrderID, &o.DocumentID, &o.CustomerID,
		&o.Location.Address, &o.Location.Area, &o.Location.City, &o.Location.Country,
		&o.Package.Title, &o.Package.Price,
		&o.Price, &o.Total, &o.CurrencyCode,
		&o.PaymentStatus, &o.PaymentID, &o.ResponseID, &o.Locale,
		&o.CreatedAt, &o.UpdatedAt,
		&cust.ID, &cust.FullName, &cust.Email, &cust.Phone, &cust.CountryCode,
		&cust.CreatedAt, &cust.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	o.Customer = &cust
	return &o, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
