package services

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
)

// TradeExecutorSvc executes purchases with all-or-nothing semantics.
type TradeExecutorSvc interface {
	// Purchase buys the whole listing for buyerID. On any error the ledger is
	// left exactly as it was before the call.
	Purchase(ctx context.Context, buyerID string, listingID string) (*domain.Settlement, error)
}

// TradeHistorySvc reads the audit trail.
type TradeHistorySvc interface {
	// ListTransactions returns up to limit transactions involving companyID, newest first.
	ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error)
}

// TradeSvcFacade combines the trade interfaces.
type TradeSvcFacade interface {
	TradeExecutorSvc
	TradeHistorySvc
}
