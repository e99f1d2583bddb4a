package services

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
)

// CompanyReaderSvc reads the company directory.
type CompanyReaderSvc interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyAuthenticatorSvc checks fixture credentials.
type CompanyAuthenticatorSvc interface {
	// Authenticate returns apperrors.ErrUnauthorized for unknown IDs and wrong passwords alike.
	Authenticate(ctx context.Context, companyID string, password string) (*domain.Company, error)
}

// CompanySvcFacade combines the directory interfaces.
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyAuthenticatorSvc
}
