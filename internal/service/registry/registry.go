// internal/service/registry/registry.go
package registry

import (
	"context"
	"fmt"

	"hh-order-service/internal/domain/customer"
	xerrors "hh-order-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Registry resolves a customer record by its (phone, country code) natural
// key, creating or updating as needed.
type Registry struct {
	customers customer.Repository
	logger    *zap.Logger
}

func NewRegistry(customers customer.Repository, logger *zap.Logger) *Registry {
	return &Registry{
		customers: customers,
		logger:    logger,
	}
}

// Resolve returns the customer for the given (phone, countryCode) pair.
// On a miss a new customer is created with the supplied fields; on a hit the
// stored email is refreshed to the latest submitted value (latest-write-wins)
// and the updated record is returned. Persistence failures propagate; nothing
// is retried here.
func (s *Registry) Resolve(ctx context.Context, req *customer.ResolveRequest) (*customer.Customer, error) {
	existing, err := s.customers.FindByPhoneAndCountry(ctx, req.Phone, req.CountryCode)
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if existing == nil {
		c := &customer.Customer{
			FullName:    req.FullName,
			Email:       req.Email,
			Phone:       req.Phone,
			CountryCode: req.CountryCode,
		}
		if err := s.customers.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}

		s.logger.Info("customer created",
			zap.Int64("customer_id", c.ID),
			zap.String("phone", c.FullPhone()),
		)
		return c, nil
	}

	updated, err := s.customers.UpdateEmail(ctx, existing.ID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh customer email: %w", err)
	}

	s.logger.Info("customer email refreshed",
		zap.Int64("customer_id", updated.ID),
	)
	return updated, nil
}
