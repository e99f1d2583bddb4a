package repositories

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet balances.
type WalletReader interface {
	// GetWallet returns the current balance, defaulting an unseen company to the
	// starting balance. It never returns ErrNotFound.
	GetWallet(ctx context.Context, companyID string) (decimal.Decimal, error)
}

// WalletWriter defines write operations for wallet balances.
type WalletWriter interface {
	// AdjustWallet applies a signed delta as a single atomic step. It fails with
	// apperrors.ErrInsufficientFunds, leaving the balance untouched, when the
	// result would be negative.
	AdjustWallet(ctx context.Context, companyID string, delta decimal.Decimal) (decimal.Decimal, error)
}

// ListingReader defines read operations for listings.
type ListingReader interface {
	// GetListing returns apperrors.ErrNotFound when no listing has the ID.
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)

	// ListListings returns matching listings ordered by creation time, oldest first.
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
}

// ListingWriter defines write operations for listings.
type ListingWriter interface {
	// PutListing stores a new listing. It fails with apperrors.ErrDuplicate if the ID exists.
	PutListing(ctx context.Context, listing domain.Listing) error

	// UpdateListingStatus is a compare-and-set: it applies change only when the
	// current status equals change.From and reports whether it did.
	UpdateListingStatus(ctx context.Context, listingID string, change domain.StatusChange) (bool, error)
}

// TransactionReader defines read operations for the audit trail.
type TransactionReader interface {
	// ListTransactions returns up to limit of the most recent transactions
	// involving companyID (all companies when empty), newest first.
	ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines the append-only audit trail.
type TransactionWriter interface {
	// AppendTransaction fails only on malformed input.
	AppendTransaction(ctx context.Context, txn domain.Transaction) error
}

// SnapshotReader produces a point-in-time copy of the ledger.
type SnapshotReader interface {
	Snapshot(ctx context.Context, recentTransactions int) (domain.Snapshot, error)
}

// LedgerStoreFacade combines all ledger store interfaces. It is the single
// source of truth for wallets, listings and transactions.
type LedgerStoreFacade interface {
	WalletReader
	WalletWriter
	ListingReader
	ListingWriter
	TransactionReader
	TransactionWriter
	SnapshotReader
	Transactor
}
