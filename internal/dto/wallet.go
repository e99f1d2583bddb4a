package dto

import "github.com/shopspring/decimal"

// WalletOperationRequest is the body of a deposit or withdrawal.
type WalletOperationRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" validate:"gt=0"`
	Method string          `json:"method" validate:"max=64"`
}

// WalletResponse defines the data returned for a wallet balance.
type WalletResponse struct {
	CompanyID string          `json:"companyID"`
	Balance   decimal.Decimal `json:"balance"`
}
