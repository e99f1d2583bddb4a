package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is the lifecycle state of a Listing.
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingSold      ListingStatus = "sold"
	ListingCancelled ListingStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s ListingStatus) IsTerminal() bool {
	return s == ListingSold || s == ListingCancelled
}

// IsValid reports whether s is a known status.
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingActive, ListingSold, ListingCancelled:
		return true
	}
	return false
}

// CanTransition encodes the listing state machine:
//
//	(none) --create--> active --cancel--> cancelled
//	                      \----purchase--> sold
func CanTransition(from, to ListingStatus) bool {
	return from == ListingActive && to.IsTerminal()
}

// Listing is an offer to sell a quantity of carbon credits at a unit price.
type Listing struct {
	ListingID  string          `json:"listingID"`
	SellerID   string          `json:"sellerID"`
	SellerName string          `json:"sellerName"`
	SellerLogo string          `json:"sellerLogo"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	CreditType string          `json:"creditType"`
	Vintage    string          `json:"vintage"`
	Project    string          `json:"project"`
	Location   string          `json:"location"`
	Status     ListingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	// Set once the listing leaves active. ClosedBy is the buyer for a sale
	// and the seller for a cancellation.
	ClosedBy string     `json:"closedBy,omitempty"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}

// ComputeTotal returns quantity * price.
func ComputeTotal(quantity int64, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}

// StatusChange describes a compare-and-set on a listing's status.
type StatusChange struct {
	From     ListingStatus
	To       ListingStatus
	ClosedBy string
	At       time.Time
}

// ListingFilter selects listings for read-side queries. Zero values match everything.
type ListingFilter struct {
	Status          ListingStatus
	SellerID        string
	ExcludeSellerID string
}

// Matches reports whether l passes the filter.
func (f ListingFilter) Matches(l Listing) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.SellerID != "" && l.SellerID != f.SellerID {
		return false
	}
	if f.ExcludeSellerID != "" && l.SellerID == f.ExcludeSellerID {
		return false
	}
	return true
}
