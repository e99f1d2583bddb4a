package dto

import (
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseResponse is returned once a purchase has settled.
type PurchaseResponse struct {
	Transaction   domain.Transaction `json:"transaction"`
	BuyerBalance  decimal.Decimal    `json:"buyerBalance"`
	SellerBalance decimal.Decimal    `json:"sellerBalance"`
}

// ListTransactionsParams defines query parameters for the trade history.
type ListTransactionsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// ListTransactionsResponse wraps a page of transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}
