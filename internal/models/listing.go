package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is the row shape of the listings table.
type Listing struct {
	ListingID  string          `db:"listing_id"`
	SellerID   string          `db:"seller_id"`
	SellerName string          `db:"seller_name"`
	SellerLogo string          `db:"seller_logo"`
	Quantity   int64           `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	Total      decimal.Decimal `db:"total"`
	CreditType string          `db:"credit_type"`
	Vintage    string          `db:"vintage"`
	Project    string          `db:"project"`
	Location   string          `db:"location"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	ClosedBy   string          `db:"closed_by"`
	ClosedAt   *time.Time      `db:"closed_at"` // NULL while active
}
