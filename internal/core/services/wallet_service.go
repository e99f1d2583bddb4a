package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/SscSPs/carbonx_exchange/internal/utils"
	"github.com/shopspring/decimal"
)

type walletService struct {
	ledgerService
}

func NewWalletService(store portsrepo.LedgerStoreFacade, options ...ServiceOption) portssvc.WalletSvcFacade {
	return &walletService{ledgerService: newLedgerService(store, options...)}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetBalance(ctx context.Context, companyID string) (decimal.Decimal, error) {
	if err := requireID("companyID", companyID); err != nil {
		return decimal.Zero, err
	}
	return s.store.GetWallet(ctx, companyID)
}

func (s *walletService) Deposit(ctx context.Context, companyID string, req dto.WalletOperationRequest) (*domain.Wallet, error) {
	return s.apply(ctx, companyID, domain.TxnDeposit, req)
}

func (s *walletService) Withdraw(ctx context.Context, companyID string, req dto.WalletOperationRequest) (*domain.Wallet, error) {
	return s.apply(ctx, companyID, domain.TxnWithdrawal, req)
}

func (s *walletService) apply(ctx context.Context, companyID string, kind domain.TransactionType, req dto.WalletOperationRequest) (*domain.Wallet, error) {
	wallet, err := s.adjust(ctx, companyID, kind, req)
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		outcome = metrics.OutcomeInsufficientFunds
	case errors.Is(err, apperrors.ErrValidation):
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.WalletOperation(string(kind), outcome)
	return wallet, err
}

func (s *walletService) adjust(ctx context.Context, companyID string, kind domain.TransactionType, req dto.WalletOperationRequest) (*domain.Wallet, error) {
	if err := requireID("companyID", companyID); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	delta := req.Amount
	if kind == domain.TxnWithdrawal {
		delta = delta.Neg()
	}
	now := s.now()
	txn := domain.Transaction{
		TransactionID: utils.NewID(utils.TransactionIDPrefix),
		Type:          kind,
		CompanyID:     companyID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
	}

	unlock := s.locks.Lock(WalletKey(companyID))
	defer unlock()

	var balance decimal.Decimal
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if balance, err = s.store.AdjustWallet(ctx, companyID, delta); err != nil {
			return err
		}
		return s.store.AppendTransaction(ctx, txn)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Wallet operation failed", slog.String("company_id", companyID), slog.String("type", string(kind)))
		}
		return nil, err
	}

	s.publish(
		domain.WalletUpdated{CompanyID: companyID, Balance: balance},
		domain.TransactionRecorded{Transaction: txn},
	)
	s.LogInfo(ctx, "Wallet updated",
		slog.String("company_id", companyID),
		slog.String("type", string(kind)),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", balance.String()))
	return &domain.Wallet{CompanyID: companyID, Balance: balance, UpdatedAt: now}, nil
}
