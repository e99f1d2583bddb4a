package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/SscSPs/carbonx_exchange/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService(t *testing.T) {
	ctx := context.Background()
	svc, err := services.NewCompanyService(services.DefaultCompanySeeds())
	require.NoError(t, err)

	t.Run("authenticate", func(t *testing.T) {
		company, err := svc.Authenticate(ctx, "BEE-KA-S001", "jsw2025")
		require.NoError(t, err)
		assert.Equal(t, "JSW Steel", company.Name)
		assert.NotEqual(t, "jsw2025", company.PasswordHash)

		_, err = svc.Authenticate(ctx, "BEE-KA-S001", "acc2025")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		_, err = svc.Authenticate(ctx, "BEE-KA-X999", "jsw2025")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("directory", func(t *testing.T) {
		all, err := svc.ListCompanies(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "BEE-KA-C001", all[0].CompanyID)

		hpcl, err := svc.GetCompany(ctx, "BEE-KA-R001")
		require.NoError(t, err)
		assert.Equal(t, "⛽", hpcl.Logo)

		_, err = svc.GetCompany(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestNewCompanyService_RejectsDuplicateIDs(t *testing.T) {
	seed := services.CompanySeed{Company: domain.Company{CompanyID: "X"}, Password: "p"}

	_, err := services.NewCompanyService([]services.CompanySeed{seed, seed})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
