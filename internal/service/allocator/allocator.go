// internal/service/allocator/allocator.go
package allocator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hh-order-service/internal/domain/order"
	xerrors "hh-order-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// maxRetries bounds the optimistic allocate-and-create loop: the first
// attempt plus this many retries after duplicate-key failures.
const maxRetries = 3

// Allocator mints unique, monotonically increasing, human-readable order
// identifiers. It is not an atomic counter: two concurrent allocations can
// read the same last identifier and compute the same candidate, in which case
// exactly one create succeeds and the other retries with a fresh read.
type Allocator struct {
	orders order.Repository
	prefix string
	seed   int
	logger *zap.Logger
}

func NewAllocator(orders order.Repository, prefix string, seed int, logger *zap.Logger) *Allocator {
	return &Allocator{
		orders: orders,
		prefix: prefix,
		seed:   seed,
		logger: logger,
	}
}

// Allocate mints the next order identifier and creates the order in one
// sequence. On a duplicate-key failure the whole sequence is retried, up to
// 3 additional attempts; a 4th consecutive failure returns
// xerrors.ErrAllocationExhausted.
func (s *Allocator) Allocate(ctx context.Context, draft *order.Draft) (*order.Order, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		orderID, err := s.nextOrderID(ctx)
		if err != nil {
			return nil, err
		}

		o := &order.Order{
			OrderID:       orderID,
			DocumentID:    ulid.Make().String(),
			CustomerID:    draft.CustomerID,
			Location:      draft.Location,
			Package:       draft.Package,
			Price:         draft.Price,
			Total:         draft.Total,
			CurrencyCode:  draft.CurrencyCode,
			PaymentStatus: order.StatusPaymentPending,
			PaymentID:     draft.PaymentID,
			ResponseID:    draft.ResponseID,
			Locale:        draft.Locale,
		}

		err = s.orders.Create(ctx, o)
		if err == nil {
			s.logger.Info("order created",
				zap.String("order_id", o.OrderID),
				zap.String("document_id", o.DocumentID),
				zap.Int("attempt", attempt+1),
			)
			return o, nil
		}

		if !xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}

		s.logger.Warn("order id collision, retrying",
			zap.String("order_id", orderID),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, xerrors.ErrAllocationExhausted
}

// nextOrderID reads the most recent identifier sharing the prefix and
// increments its numeric suffix, or starts from the configured seed when no
// such order exists.
func (s *Allocator) nextOrderID(ctx context.Context) (string, error) {
	last, err := s.orders.FindLastByPrefix(ctx, s.prefix)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return fmt.Sprintf("%s%d", s.prefix, s.seed), nil
		}
		return "", fmt.Errorf("failed to read last order id: %w", err)
	}

	suffix := strings.TrimPrefix(last.OrderID, s.prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("malformed order id %q: %w", last.OrderID, err)
	}

	return fmt.Sprintf("%s%d", s.prefix, n+1), nil
}
