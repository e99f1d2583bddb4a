package dto

import (
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateListingRequest defines the data needed to list credits for sale.
// The seller is the authenticated company, never a body field.
type CreateListingRequest struct {
	Quantity   int64           `json:"quantity" binding:"required" validate:"gt=0"`
	Price      decimal.Decimal `json:"price" binding:"required" validate:"gt=0"`
	CreditType string          `json:"creditType" validate:"max=64"`
	Vintage    string          `json:"vintage" validate:"max=16"`
	Project    string          `json:"project" validate:"max=256"`
	Location   string          `json:"location" validate:"max=128"`
}

// ListListingsParams defines query parameters for browsing the marketplace.
type ListListingsParams struct {
	ExcludeSellerID string `form:"excludeSellerId"`
}

// ListListingsResponse wraps a list of listings.
type ListListingsResponse struct {
	Listings []domain.Listing `json:"listings"`
}
