// internal/repository/memory/order_repo.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"hh-order-service/internal/domain/order"
	xerrors "hh-order-service/internal/pkg/errors"
)

// OrderRepository is an in-memory order.Repository used in tests. It enforces
// order_id uniqueness the same way the Postgres implementation does, which is
// what the allocator's retry path exercises.
type OrderRepository struct {
	mu     sync.Mutex
	nextID int64
	orders []*order.Order

	// CreateErrs, when non-empty, is consumed one error per Create call
	// before the normal insert logic runs. Tests use it to simulate
	// duplicate-key failures.
	CreateErrs []error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{nextID: 1}
}

var _ order.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.CreateErrs) > 0 {
		err := r.CreateErrs[0]
		r.CreateErrs = r.CreateErrs[1:]
		if err != nil {
			return err
		}
	}

	for _, existing := range r.orders {
		if existing.OrderID == o.OrderID {
			return xerrors.ErrDuplicateEntry
		}
	}

	o.ID = r.nextID
	r.nextID++
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *OrderRepository) FindLastByPrefix(_ context.Context, prefix string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last *order.Order
	for _, o := range r.orders {
		if !strings.HasPrefix(o.OrderID, prefix) {
			continue
		}
		if last == nil || o.OrderID > last.OrderID {
			last = o
		}
	}
	if last == nil {
		return nil, xerrors.ErrNotFound
	}

	cp := *last
	return &cp, nil
}

func (r *OrderRepository) FindByOrderID(_ context.Context, orderID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(func(o *order.Order) bool { return o.OrderID == orderID })
}

func (r *OrderRepository) FindByDocumentID(_ context.Context, documentID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(func(o *order.Order) bool { return o.DocumentID == documentID })
}

func (r *OrderRepository) UpdatePaymentStatus(_ context.Context, orderID, status string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderID == orderID {
			o.PaymentStatus = status
			o.UpdatedAt = time.Now()
			cp := *o
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

// All returns a snapshot of every stored order, in insertion order.
func (r *OrderRepository) All() []*order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out
}

func (r *OrderRepository) findLocked(match func(*order.Order) bool) (*order.Order, error) {
	for _, o := range r.orders {
		if match(o) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}
