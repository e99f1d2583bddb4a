package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the append-only transactions table.
// Optional text columns are stored as '' rather than NULL.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	Type           string          `db:"type"`
	CompanyID      string          `db:"company_id"`
	CounterpartyID string          `db:"counterparty_id"`
	ListingID      string          `db:"listing_id"`
	Quantity       int64           `db:"quantity"`
	Price          decimal.Decimal `db:"price"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	Status         string          `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
}
