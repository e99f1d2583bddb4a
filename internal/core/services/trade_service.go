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
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
	"github.com/SscSPs/carbonx_exchange/internal/utils"
)

const (
	defaultTransactionLimit = domain.DefaultRecentTransactionsWindow
	maxTransactionLimit     = 500
)

// errStatusChanged aborts a unit of work whose listing compare-and-set lost.
var errStatusChanged = errors.New("listing status changed concurrently")

// tradeService settles purchases. A purchase is all-or-nothing: the buyer is
// debited, the listing flips active -> sold, the seller is credited and a
// purchase record is appended inside one store unit of work, which is rolled
// back as a whole when any step fails.
type tradeService struct {
	ledgerService
}

func NewTradeService(store portsrepo.LedgerStoreFacade, options ...ServiceOption) portssvc.TradeSvcFacade {
	return &tradeService{ledgerService: newLedgerService(store, options...)}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

func (s *tradeService) Purchase(ctx context.Context, buyerID string, listingID string) (*domain.Settlement, error) {
	settlement, err := s.purchase(ctx, buyerID, listingID)
	s.metrics.PurchaseAttempt(purchaseOutcome(err))
	return settlement, err
}

func (s *tradeService) purchase(ctx context.Context, buyerID string, listingID string) (*domain.Settlement, error) {
	if err := requireID("buyerID", buyerID); err != nil {
		return nil, err
	}
	if err := requireID("listingID", listingID); err != nil {
		return nil, err
	}

	// The seller is needed to pick the locks; status is checked again once held.
	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := checkPurchasable(listing, buyerID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ListingKey(listingID), WalletKey(buyerID), WalletKey(listing.SellerID))
	defer unlock()

	if listing, err = s.store.GetListing(ctx, listingID); err != nil {
		return nil, err
	}
	if err := checkPurchasable(listing, buyerID); err != nil {
		return nil, err
	}

	now := s.now()
	amount := listing.Total
	txn := domain.Transaction{
		TransactionID:  utils.NewID(utils.TransactionIDPrefix),
		Type:           domain.TxnPurchase,
		CompanyID:      buyerID,
		CounterpartyID: listing.SellerID,
		ListingID:      listingID,
		Quantity:       listing.Quantity,
		Price:          listing.Price,
		Amount:         amount,
		Status:         domain.TxnCompleted,
		CreatedAt:      now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	settlement := &domain.Settlement{Transaction: txn}
	debited := false
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		buyerBalance, err := s.store.AdjustWallet(ctx, buyerID, amount.Neg())
		if err != nil {
			return err
		}
		debited = true

		ok, err := s.store.UpdateListingStatus(ctx, listingID, domain.StatusChange{
			From:     domain.ListingActive,
			To:       domain.ListingSold,
			ClosedBy: buyerID,
			At:       now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return errStatusChanged
		}

		sellerBalance, err := s.store.AdjustWallet(ctx, listing.SellerID, amount)
		if err != nil {
			return err
		}
		if err := s.store.AppendTransaction(ctx, txn); err != nil {
			return err
		}

		settlement.BuyerBalance = buyerBalance
		settlement.SellerBalance = sellerBalance
		return nil
	})
	if err != nil && debited {
		s.metrics.PurchaseRollback()
	}
	if errors.Is(err, errStatusChanged) {
		return nil, fmt.Errorf("%w: listing %s", apperrors.ErrAlreadySold, listingID)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Purchase failed", slog.String("listing_id", listingID), slog.String("buyer_id", buyerID))
		}
		return nil, err
	}

	sold := *listing
	sold.Status = domain.ListingSold
	sold.ClosedBy = buyerID
	sold.ClosedAt = &now
	settlement.Listing = sold

	s.metrics.ListingTransition(string(domain.ListingSold))
	s.publish(
		domain.SaleCompleted{Listing: sold, BuyerID: buyerID, Transaction: txn},
		domain.WalletUpdated{CompanyID: buyerID, Balance: settlement.BuyerBalance},
		domain.WalletUpdated{CompanyID: listing.SellerID, Balance: settlement.SellerBalance},
	)
	s.LogInfo(ctx, "Purchase settled",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("listing_id", listingID),
		slog.String("buyer_id", buyerID),
		slog.String("seller_id", listing.SellerID),
		slog.String("amount", amount.String()))
	return settlement, nil
}

func (s *tradeService) ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error) {
	if err := requireID("companyID", companyID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	return s.store.ListTransactions(ctx, companyID, limit)
}

func checkPurchasable(listing *domain.Listing, buyerID string) error {
	switch listing.Status {
	case domain.ListingSold:
		return fmt.Errorf("%w: listing %s", apperrors.ErrAlreadySold, listing.ListingID)
	case domain.ListingCancelled:
		return fmt.Errorf("%w: listing %s is cancelled", apperrors.ErrInvalidState, listing.ListingID)
	}
	if listing.SellerID == buyerID {
		return fmt.Errorf("%w: cannot buy your own listing", apperrors.ErrForbidden)
	}
	return nil
}

func purchaseOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, apperrors.ErrAlreadySold):
		return metrics.OutcomeAlreadySold
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return metrics.OutcomeInsufficientFunds
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrValidation):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
