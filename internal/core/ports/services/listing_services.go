package services

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
)

// ListingReaderSvc defines read operations for listings.
type ListingReaderSvc interface {
	// GetListing retrieves a listing in any status.
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)

	// ListActiveListings returns active listings, optionally excluding one seller's own.
	ListActiveListings(ctx context.Context, excludeSellerID string) ([]domain.Listing, error)

	// ListListingsBySeller returns every listing of a seller regardless of status.
	ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
}

// ListingWriterSvc defines the listing lifecycle operations.
type ListingWriterSvc interface {
	// CreateListing validates the request and stores an active listing.
	CreateListing(ctx context.Context, sellerID string, req dto.CreateListingRequest) (*domain.Listing, error)

	// CancelListing moves an active listing owned by requesterID to cancelled.
	CancelListing(ctx context.Context, listingID string, requesterID string) (*domain.Listing, error)
}

// ListingSvcFacade combines all listing-related service interfaces.
type ListingSvcFacade interface {
	ListingReaderSvc
	ListingWriterSvc
}
