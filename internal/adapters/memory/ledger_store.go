package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// LedgerStore keeps wallets, listings and transactions in process memory.
// Every operation runs under one mutex, so each is a single linearizable step.
// Writes made inside RunInTx are journaled and undone if the unit fails; they
// are visible to other readers before the unit ends.
type LedgerStore struct {
	mu             sync.RWMutex
	defaultBalance decimal.Decimal
	wallets        map[string]decimal.Decimal
	listings       map[string]*domain.Listing
	order          []string // listing IDs in insertion order
	transactions   []domain.Transaction
}

// Option configures a LedgerStore.
type Option func(*LedgerStore)

// WithDefaultBalance overrides the starting balance of unseen wallets.
func WithDefaultBalance(balance decimal.Decimal) Option {
	return func(s *LedgerStore) {
		s.defaultBalance = balance
	}
}

// NewLedgerStore creates an empty in-memory store.
func NewLedgerStore(opts ...Option) *LedgerStore {
	s := &LedgerStore{
		defaultBalance: domain.DefaultWalletBalance,
		wallets:        make(map[string]decimal.Decimal),
		listings:       make(map[string]*domain.Listing),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portsrepo.LedgerStoreFacade = (*LedgerStore)(nil)

func (s *LedgerStore) balanceLocked(companyID string) decimal.Decimal {
	if bal, ok := s.wallets[companyID]; ok {
		return bal
	}
	return s.defaultBalance
}

// GetWallet returns the balance of companyID, or the default for an unseen company.
func (s *LedgerStore) GetWallet(_ context.Context, companyID string) (decimal.Decimal, error) {
	if companyID == "" {
		return decimal.Zero, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balanceLocked(companyID), nil
}

// AdjustWallet applies delta atomically, refusing to go below zero.
func (s *LedgerStore) AdjustWallet(ctx context.Context, companyID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if companyID == "" {
		return decimal.Zero, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.balanceLocked(companyID)
	next := current.Add(delta)
	if next.IsNegative() {
		return current, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, current, delta.Neg())
	}
	s.wallets[companyID] = next
	mustNonNegative(companyID, s.wallets[companyID])
	journalFrom(ctx).record(func() {
		s.wallets[companyID] = s.wallets[companyID].Sub(delta)
		mustNonNegative(companyID, s.wallets[companyID])
	})
	return next, nil
}

// GetListing returns a copy of the listing.
func (s *LedgerStore) GetListing(_ context.Context, listingID string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("%w: listing %s", apperrors.ErrNotFound, listingID)
	}
	cp := *l
	return &cp, nil
}

// ListListings returns matching listings in creation order.
func (s *LedgerStore) ListListings(_ context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listListingsLocked(filter), nil
}

func (s *LedgerStore) listListingsLocked(filter domain.ListingFilter) []domain.Listing {
	out := make([]domain.Listing, 0)
	for _, id := range s.order {
		l := s.listings[id]
		if filter.Matches(*l) {
			out = append(out, *l)
		}
	}
	return out
}

// PutListing stores a new listing.
func (s *LedgerStore) PutListing(ctx context.Context, listing domain.Listing) error {
	if listing.ListingID == "" {
		return fmt.Errorf("%w: listing ID is required", apperrors.ErrValidation)
	}
	if !listing.Status.IsValid() {
		return fmt.Errorf("%w: unknown listing status %q", apperrors.ErrValidation, listing.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ListingID]; exists {
		return fmt.Errorf("%w: listing %s", apperrors.ErrDuplicate, listing.ListingID)
	}
	cp := listing
	s.listings[listing.ListingID] = &cp
	s.order = append(s.order, listing.ListingID)
	journalFrom(ctx).record(func() {
		delete(s.listings, listing.ListingID)
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == listing.ListingID })
	})
	return nil
}

// UpdateListingStatus performs the compare-and-set that prevents double sales.
func (s *LedgerStore) UpdateListingStatus(ctx context.Context, listingID string, change domain.StatusChange) (bool, error) {
	if !domain.CanTransition(change.From, change.To) {
		return false, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidState, change.From, change.To)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return false, fmt.Errorf("%w: listing %s", apperrors.ErrNotFound, listingID)
	}
	if l.Status != change.From {
		return false, nil
	}
	prev := *l
	journalFrom(ctx).record(func() { *l = prev })
	at := change.At
	l.Status = change.To
	l.ClosedBy = change.ClosedBy
	l.ClosedAt = &at
	return true, nil
}

// AppendTransaction adds a record to the audit trail.
func (s *LedgerStore) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txn)
	journalFrom(ctx).record(func() {
		s.transactions = slices.DeleteFunc(s.transactions, func(t domain.Transaction) bool {
			return t.TransactionID == txn.TransactionID
		})
	})
	return nil
}

// ListTransactions returns the newest matching transactions first.
func (s *LedgerStore) ListTransactions(_ context.Context, companyID string, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recentLocked(companyID, limit), nil
}

func (s *LedgerStore) recentLocked(companyID string, limit int) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		txn := s.transactions[i]
		if companyID == "" || txn.Involves(companyID) {
			out = append(out, txn)
		}
	}
	return out
}

// Snapshot copies active listings, known wallets and the recent transaction
// window under one read lock.
func (s *LedgerStore) Snapshot(_ context.Context, recentTransactions int) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make(map[string]decimal.Decimal, len(s.wallets))
	for id, bal := range s.wallets {
		wallets[id] = bal
	}
	recent := s.recentLocked("", recentTransactions)
	// snapshot window is delivered oldest first, like the live stream
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	return domain.Snapshot{
		Listings:           s.listListingsLocked(domain.ListingFilter{Status: domain.ListingActive}),
		Wallets:            wallets,
		RecentTransactions: recent,
	}, nil
}

// mustNonNegative guards the wallet invariant. Reaching the panic means the
// check-and-apply above is broken; continuing would corrupt the ledger.
func mustNonNegative(companyID string, balance decimal.Decimal) {
	if balance.IsNegative() {
		panic(fmt.Sprintf("ledger invariant violated: wallet %s balance %s < 0", companyID, balance))
	}
}

type journalCtxKey struct{}

// journal holds undo steps for the writes of one RunInTx unit. Steps run
// with s.mu held.
type journal struct {
	undo []func()
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(journalCtxKey{}).(*journal)
	return j
}

func (j *journal) record(step func()) {
	if j != nil {
		j.undo = append(j.undo, step)
	}
}

// RunInTx runs fn as one unit. When fn returns an error or panics, the
// writes it made are undone in reverse order. Nested calls join the outer unit.
func (s *LedgerStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}
	j := &journal{}
	committed := false
	defer func() {
		if committed {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
	}()

	if err := fn(context.WithValue(ctx, journalCtxKey{}, j)); err != nil {
		return err
	}
	committed = true
	return nil
}
