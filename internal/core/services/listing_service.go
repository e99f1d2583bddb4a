package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/utils"
)

// listingService manages the listing lifecycle: active, then exactly one of
// sold or cancelled.
type listingService struct {
	ledgerService
	companies portssvc.CompanyReaderSvc
}

// NewListingService creates a listing service. companies may be nil, in which
// case listings carry no seller display details.
func NewListingService(store portsrepo.LedgerStoreFacade, companies portssvc.CompanyReaderSvc, options ...ServiceOption) portssvc.ListingSvcFacade {
	return &listingService{
		ledgerService: newLedgerService(store, options...),
		companies:     companies,
	}
}

var _ portssvc.ListingSvcFacade = (*listingService)(nil)

func (s *listingService) CreateListing(ctx context.Context, sellerID string, req dto.CreateListingRequest) (*domain.Listing, error) {
	if err := requireID("sellerID", sellerID); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	now := s.now()
	listing := domain.Listing{
		ListingID:  utils.NewID(utils.ListingIDPrefix),
		SellerID:   sellerID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Total:      domain.ComputeTotal(req.Quantity, req.Price),
		CreditType: req.CreditType,
		Vintage:    req.Vintage,
		Project:    req.Project,
		Location:   req.Location,
		Status:     domain.ListingActive,
		CreatedAt:  now,
	}
	if s.companies != nil {
		if company, err := s.companies.GetCompany(ctx, sellerID); err == nil {
			listing.SellerName = company.Name
			listing.SellerLogo = company.Logo
		}
	}
	txn := domain.Transaction{
		TransactionID: utils.NewID(utils.TransactionIDPrefix),
		Type:          domain.TxnListingCreated,
		CompanyID:     sellerID,
		ListingID:     listing.ListingID,
		Quantity:      listing.Quantity,
		Price:         listing.Price,
		Amount:        listing.Total,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	unlock := s.locks.Lock(ListingKey(listing.ListingID))
	defer unlock()

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.PutListing(ctx, listing); err != nil {
			return err
		}
		return s.store.AppendTransaction(ctx, txn)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store listing", slog.String("listing_id", listing.ListingID))
		return nil, err
	}

	s.metrics.ListingTransition(string(domain.ListingActive))
	s.publish(domain.ListingCreated{Listing: listing})
	s.LogInfo(ctx, "Listing created",
		slog.String("listing_id", listing.ListingID),
		slog.String("seller_id", sellerID),
		slog.String("total", listing.Total.String()))
	return &listing, nil
}

func (s *listingService) CancelListing(ctx context.Context, listingID string, requesterID string) (*domain.Listing, error) {
	if err := requireID("listingID", listingID); err != nil {
		return nil, err
	}
	if err := requireID("requesterID", requesterID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ListingKey(listingID))
	defer unlock()

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != requesterID {
		return nil, fmt.Errorf("%w: listing %s belongs to another seller", apperrors.ErrForbidden, listingID)
	}
	if listing.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: listing %s is %s", apperrors.ErrInvalidState, listingID, listing.Status)
	}

	now := s.now()
	change := domain.StatusChange{From: domain.ListingActive, To: domain.ListingCancelled, ClosedBy: requesterID, At: now}
	txn := domain.Transaction{
		TransactionID: utils.NewID(utils.TransactionIDPrefix),
		Type:          domain.TxnListingCancelled,
		CompanyID:     requesterID,
		ListingID:     listingID,
		Quantity:      listing.Quantity,
		Price:         listing.Price,
		Amount:        listing.Total,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := s.store.UpdateListingStatus(ctx, listingID, change)
		if err != nil {
			return err
		}
		if !ok {
			return errStatusChanged
		}
		return s.store.AppendTransaction(ctx, txn)
	})
	if errors.Is(err, errStatusChanged) {
		return nil, fmt.Errorf("%w: listing %s is no longer active", apperrors.ErrInvalidState, listingID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel listing", slog.String("listing_id", listingID))
		return nil, err
	}

	listing.Status = domain.ListingCancelled
	listing.ClosedBy = requesterID
	listing.ClosedAt = &now

	s.metrics.ListingTransition(string(domain.ListingCancelled))
	s.publish(domain.ListingWithdrawn{Listing: *listing})
	s.LogInfo(ctx, "Listing cancelled", slog.String("listing_id", listingID))
	return listing, nil
}

func (s *listingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	if err := requireID("listingID", listingID); err != nil {
		return nil, err
	}
	return s.store.GetListing(ctx, listingID)
}

func (s *listingService) ListActiveListings(ctx context.Context, excludeSellerID string) ([]domain.Listing, error) {
	listings, err := s.store.ListListings(ctx, domain.ListingFilter{Status: domain.ListingActive, ExcludeSellerID: excludeSellerID})
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Listed active listings", slog.Int("count", len(listings)), slog.String("exclude_seller_id", excludeSellerID))
	return listings, nil
}

func (s *listingService) ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	if err := requireID("sellerID", sellerID); err != nil {
		return nil, err
	}
	return s.store.ListListings(ctx, domain.ListingFilter{SellerID: sellerID})
}
