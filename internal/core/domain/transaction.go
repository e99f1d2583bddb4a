package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies what a Transaction record audits.
type TransactionType string

const (
	TxnPurchase         TransactionType = "purchase"
	TxnDeposit          TransactionType = "deposit"
	TxnWithdrawal       TransactionType = "withdrawal"
	TxnListingCreated   TransactionType = "listing-created"
	TxnListingCancelled TransactionType = "listing-cancelled"
)

// TransactionStatus is the resulting status recorded with a transaction.
type TransactionStatus string

const TxnCompleted TransactionStatus = "completed"

// Transaction is an immutable audit record, appended the instant an operation commits.
//
// CompanyID is the initiating party: the buyer of a purchase, the seller of a
// listing event, the wallet owner of a deposit or withdrawal. CounterpartyID is
// only set for purchases (the seller).
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	Type           TransactionType   `json:"type"`
	CompanyID      string            `json:"companyID"`
	CounterpartyID string            `json:"counterpartyID,omitempty"`
	ListingID      string            `json:"listingID,omitempty"`
	Quantity       int64             `json:"quantity,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	Amount         decimal.Decimal   `json:"amount"`
	Method         string            `json:"method,omitempty"`
	Status         TransactionStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Involves reports whether companyID is a party to the transaction.
func (t Transaction) Involves(companyID string) bool {
	return t.CompanyID == companyID || t.CounterpartyID == companyID
}

// Validate rejects malformed records before they reach the audit trail.
func (t Transaction) Validate() error {
	if t.TransactionID == "" {
		return errors.New("transaction ID is required")
	}
	if t.CompanyID == "" {
		return errors.New("company ID is required")
	}
	switch t.Type {
	case TxnPurchase:
		if t.CounterpartyID == "" || t.ListingID == "" {
			return errors.New("purchase requires counterparty and listing")
		}
		if t.Quantity <= 0 {
			return errors.New("purchase quantity must be positive")
		}
	case TxnListingCreated, TxnListingCancelled:
		if t.ListingID == "" {
			return errors.New("listing transaction requires listing ID")
		}
	case TxnDeposit, TxnWithdrawal:
		if !t.Amount.IsPositive() {
			return errors.New("amount must be positive")
		}
	default:
		return errors.New("unknown transaction type")
	}
	if t.Amount.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("created at is required")
	}
	return nil
}

// Settlement is the outcome of a successful purchase.
type Settlement struct {
	Transaction   Transaction
	Listing       Listing
	BuyerBalance  decimal.Decimal
	SellerBalance decimal.Decimal
}
