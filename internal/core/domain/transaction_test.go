package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid purchase",
			tx: domain.Transaction{
				TransactionID:  "txn_1",
				Type:           domain.TxnPurchase,
				CompanyID:      "BEE-KA-C001",
				CounterpartyID: "BEE-KA-S001",
				ListingID:      "lst_1",
				Quantity:       100,
				Price:          decimal.RequireFromString("25.50"),
				Amount:         decimal.NewFromInt(2550),
				CreatedAt:      now,
			},
		},
		{
			name: "valid deposit",
			tx: domain.Transaction{
				TransactionID: "txn_2",
				Type:          domain.TxnDeposit,
				CompanyID:     "BEE-KA-S001",
				Amount:        decimal.NewFromInt(1000),
				Method:        "bank-transfer",
				CreatedAt:     now,
			},
		},
		{
			name: "purchase without counterparty",
			tx: domain.Transaction{
				TransactionID: "txn_3",
				Type:          domain.TxnPurchase,
				CompanyID:     "BEE-KA-C001",
				ListingID:     "lst_1",
				Quantity:      1,
				Amount:        decimal.NewFromInt(10),
				CreatedAt:     now,
			},
			wantErr: true,
			errMsg:  "purchase requires counterparty and listing",
		},
		{
			name: "withdrawal of zero",
			tx: domain.Transaction{
				TransactionID: "txn_4",
				Type:          domain.TxnWithdrawal,
				CompanyID:     "BEE-KA-S001",
				Amount:        decimal.Zero,
				CreatedAt:     now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				TransactionID: "txn_5",
				Type:          "refund",
				CompanyID:     "BEE-KA-S001",
				CreatedAt:     now,
			},
			wantErr: true,
			errMsg:  "unknown transaction type",
		},
		{
			name: "missing timestamp",
			tx: domain.Transaction{
				TransactionID: "txn_6",
				Type:          domain.TxnListingCreated,
				CompanyID:     "BEE-KA-S001",
				ListingID:     "lst_1",
			},
			wantErr: true,
			errMsg:  "created at is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Involves(t *testing.T) {
	tx := domain.Transaction{CompanyID: "buyer", CounterpartyID: "seller"}

	assert.True(t, tx.Involves("buyer"))
	assert.True(t, tx.Involves("seller"))
	assert.False(t, tx.Involves("someone-else"))
}
