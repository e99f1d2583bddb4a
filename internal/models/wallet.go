package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the row shape of the wallets table. A company has no row until
// its balance first changes.
type Wallet struct {
	CompanyID string          `db:"company_id"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
}
