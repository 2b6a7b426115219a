package registry

import (
	"context"
	"testing"

	"hh-order-service/internal/domain/customer"
	"hh-order-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry() (*Registry, *memory.CustomerRepository) {
	repo := memory.NewCustomerRepository()
	return NewRegistry(repo, zap.NewNop()), repo
}

func TestResolve_CreatesNewCustomer(t *testing.T) {
	reg, repo := newTestRegistry()
	ctx := context.Background()

	c, err := reg.Resolve(ctx, &customer.ResolveRequest{
		FullName:    "Amina Hassan",
		Email:       "amina@example.com",
		Phone:       "501234567",
		CountryCode: "+971",
	})
	require.NoError(t, err)

	assert.NotZero(t, c.ID)
	assert.Equal(t, "Amina Hassan", c.FullName)
	assert.Equal(t, "amina@example.com", c.Email)
	assert.Equal(t, 1, repo.Count())
}

func TestResolve_ExistingPairRefreshesEmailOnly(t *testing.T) {
	reg, repo := newTestRegistry()
	ctx := context.Background()

	first, err := reg.Resolve(ctx, &customer.ResolveRequest{
		FullName:    "Amina Hassan",
		Email:       "old@example.com",
		Phone:       "501234567",
		CountryCode: "+971",
	})
	require.NoError(t, err)

	second, err := reg.Resolve(ctx, &customer.ResolveRequest{
		FullName:    "Completely Different Name",
		Email:       "new@example.com",
		Phone:       "501234567",
		CountryCode: "+971",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (phone, countryCode) pair must resolve to the same customer")
	assert.Equal(t, "new@example.com", second.Email, "email is latest-write-wins")
	assert.Equal(t, "Amina Hassan", second.FullName, "only the email field is refreshed")
	assert.Equal(t, 1, repo.Count())
}

func TestResolve_NewPairCreatesDistinctCustomer(t *testing.T) {
	reg, repo := newTestRegistry()
	ctx := context.Background()

	first, err := reg.Resolve(ctx, &customer.ResolveRequest{
		FullName:    "Amina Hassan",
		Email:       "amina@example.com",
		Phone:       "501234567",
		CountryCode: "+971",
	})
	require.NoError(t, err)

	// Same phone, different country code: a different natural key.
	second, err := reg.Resolve(ctx, &customer.ResolveRequest{
		FullName:    "Amina Hassan",
		Email:       "amina@example.com",
		Phone:       "501234567",
		CountryCode: "+966",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, repo.Count())
}
