package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a company's monetary balance. Balances are never negative.
type Wallet struct {
	CompanyID string          `json:"companyID"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
