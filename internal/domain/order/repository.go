// internal/domain/order/repository.go
package order

import "context"

// Repository is the narrow persistence contract for orders.
//
// Create must map a uniqueness-constraint violation on order_id onto
// xerrors.ErrDuplicateEntry; the allocator's retry loop depends on it.
// Find methods return xerrors.ErrNotFound when no record matches, and
// populate the Customer relation.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindLastByPrefix(ctx context.Context, prefix string) (*Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*Order, error)
	FindByDocumentID(ctx context.Context, documentID string) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, status string) (*Order, error)
}
