package services

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletSvcFacade defines wallet balance operations.
type WalletSvcFacade interface {
	// GetBalance returns the balance, defaulting an unseen company.
	GetBalance(ctx context.Context, companyID string) (decimal.Decimal, error)

	// Deposit credits the wallet.
	Deposit(ctx context.Context, companyID string, req dto.WalletOperationRequest) (*domain.Wallet, error)

	// Withdraw debits the wallet, failing with apperrors.ErrInsufficientFunds
	// when the amount exceeds the balance.
	Withdraw(ctx context.Context, companyID string, req dto.WalletOperationRequest) (*domain.Wallet, error)
}
