package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/carbonx_exchange/internal/adapters/memory"
	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/SscSPs/carbonx_exchange/internal/core/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_DepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	publisher := &recordingPublisher{}
	svc := services.NewWalletService(store, services.WithPublisher(publisher))

	wallet, err := svc.Deposit(ctx, companyA, dto.WalletOperationRequest{Amount: decimal.RequireFromString("100.25"), Method: "UPI"})
	require.NoError(t, err)
	assert.Equal(t, "2500100.25", wallet.Balance.String())

	wallet, err = svc.Withdraw(ctx, companyA, dto.WalletOperationRequest{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "2500000.25", wallet.Balance.String())

	txns, err := store.ListTransactions(ctx, companyA, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TxnWithdrawal, txns[0].Type)
	assert.Equal(t, domain.TxnDeposit, txns[1].Type)
	assert.Equal(t, "UPI", txns[1].Method)

	events := publisher.Events()
	require.Len(t, events, 4)
	assert.Equal(t, "2500100.25", events[0].(domain.WalletUpdated).Balance.String())
	assert.Equal(t, domain.TxnDeposit, events[1].(domain.TransactionRecorded).Transaction.Type)
	assert.Equal(t, "2500000.25", events[2].(domain.WalletUpdated).Balance.String())
}

func TestWalletService_Rejections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	publisher := &recordingPublisher{}
	svc := services.NewWalletService(store, services.WithPublisher(publisher))

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"zero deposit", func() error {
			_, err := svc.Deposit(ctx, companyA, dto.WalletOperationRequest{Amount: decimal.Zero})
			return err
		}, apperrors.ErrValidation},
		{"negative withdraw", func() error {
			_, err := svc.Withdraw(ctx, companyA, dto.WalletOperationRequest{Amount: decimal.NewFromInt(-10)})
			return err
		}, apperrors.ErrValidation},
		{"missing company", func() error {
			_, err := svc.Deposit(ctx, "", dto.WalletOperationRequest{Amount: decimal.NewFromInt(1)})
			return err
		}, apperrors.ErrValidation},
		{"overdraw", func() error {
			_, err := svc.Withdraw(ctx, companyA, dto.WalletOperationRequest{Amount: decimal.NewFromInt(2_500_001)})
			return err
		}, apperrors.ErrInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.wantErr)
		})
	}

	bal, err := svc.GetBalance(ctx, companyA)
	require.NoError(t, err)
	assert.True(t, bal.Equal(domain.DefaultWalletBalance))
	assert.Empty(t, publisher.Events())
	txns, _ := store.ListTransactions(ctx, companyA, 0)
	assert.Empty(t, txns)
}

func TestWalletService_WithdrawExactBalance(t *testing.T) {
	svc := services.NewWalletService(memory.NewLedgerStore())

	wallet, err := svc.Withdraw(context.Background(), companyA, dto.WalletOperationRequest{Amount: domain.DefaultWalletBalance})

	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}
