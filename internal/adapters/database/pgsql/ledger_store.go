package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	"github.com/SscSPs/carbonx_exchange/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const listingColumns = `listing_id, seller_id, seller_name, seller_logo, quantity, price, total,
	credit_type, vintage, project, location, status, created_at, closed_by, closed_at`

const transactionColumns = `transaction_id, type, company_id, counterparty_id, listing_id, quantity,
	price, amount, method, status, created_at`

// PgxLedgerStore keeps the ledger in PostgreSQL. Atomicity of each
// operation comes from single conditional statements; RunInTx groups them.
type PgxLedgerStore struct {
	BaseRepository
	defaultBalance decimal.Decimal
}

// NewLedgerStore creates a store on pool. Wallets without a row report defaultBalance.
func NewLedgerStore(pool *pgxpool.Pool, defaultBalance decimal.Decimal) *PgxLedgerStore {
	return &PgxLedgerStore{BaseRepository: BaseRepository{Pool: pool}, defaultBalance: defaultBalance}
}

// Ensure PgxLedgerStore implements portsrepo.LedgerStoreFacade
var _ portsrepo.LedgerStoreFacade = (*PgxLedgerStore)(nil)

// NewRepositoryProvider wires every repository the services need.
func NewRepositoryProvider(pool *pgxpool.Pool, defaultBalance decimal.Decimal) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{LedgerStore: NewLedgerStore(pool, defaultBalance)}
}

func toModelListing(d domain.Listing) models.Listing {
	return models.Listing{
		ListingID:  d.ListingID,
		SellerID:   d.SellerID,
		SellerName: d.SellerName,
		SellerLogo: d.SellerLogo,
		Quantity:   d.Quantity,
		Price:      d.Price,
		Total:      d.Total,
		CreditType: d.CreditType,
		Vintage:    d.Vintage,
		Project:    d.Project,
		Location:   d.Location,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		ClosedBy:   d.ClosedBy,
		ClosedAt:   d.ClosedAt,
	}
}

func toDomainListing(m models.Listing) domain.Listing {
	var closedAt = m.ClosedAt
	if closedAt != nil {
		utc := closedAt.UTC()
		closedAt = &utc
	}
	return domain.Listing{
		ListingID:  m.ListingID,
		SellerID:   m.SellerID,
		SellerName: m.SellerName,
		SellerLogo: m.SellerLogo,
		Quantity:   m.Quantity,
		Price:      m.Price,
		Total:      m.Total,
		CreditType: m.CreditType,
		Vintage:    m.Vintage,
		Project:    m.Project,
		Location:   m.Location,
		Status:     domain.ListingStatus(m.Status),
		CreatedAt:  m.CreatedAt.UTC(),
		ClosedBy:   m.ClosedBy,
		ClosedAt:   closedAt,
	}
}

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		Type:           string(d.Type),
		CompanyID:      d.CompanyID,
		CounterpartyID: d.CounterpartyID,
		ListingID:      d.ListingID,
		Quantity:       d.Quantity,
		Price:          d.Price,
		Amount:         d.Amount,
		Method:         d.Method,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		Type:           domain.TransactionType(m.Type),
		CompanyID:      m.CompanyID,
		CounterpartyID: m.CounterpartyID,
		ListingID:      m.ListingID,
		Quantity:       m.Quantity,
		Price:          m.Price,
		Amount:         m.Amount,
		Method:         m.Method,
		Status:         domain.TransactionStatus(m.Status),
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func (s *PgxLedgerStore) GetWallet(ctx context.Context, companyID string) (decimal.Decimal, error) {
	if companyID == "" {
		return decimal.Zero, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	return s.getWallet(ctx, s.q(ctx), companyID)
}

func (s *PgxLedgerStore) getWallet(ctx context.Context, q querier, companyID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := q.QueryRow(ctx, `SELECT balance FROM wallets WHERE company_id = $1`, companyID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.defaultBalance, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get wallet %s: %w", companyID, err)
	}
	return balance, nil
}

// AdjustWallet applies delta with a guarded UPDATE, so the balance check and
// the write are one statement.
func (s *PgxLedgerStore) AdjustWallet(ctx context.Context, companyID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if companyID == "" {
		return decimal.Zero, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	q := s.q(ctx)

	_, err := q.Exec(ctx, `
		INSERT INTO wallets (company_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (company_id) DO NOTHING`, companyID, s.defaultBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to initialise wallet %s: %w", companyID, err)
	}

	var balance decimal.Decimal
	err = q.QueryRow(ctx, `
		UPDATE wallets SET balance = balance + $2, updated_at = now()
		WHERE company_id = $1 AND balance + $2 >= 0
		RETURNING balance`, companyID, delta).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		current, gerr := s.getWallet(ctx, q, companyID)
		if gerr != nil {
			return decimal.Zero, gerr
		}
		return current, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, current, delta.Neg())
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust wallet %s: %w", companyID, err)
	}
	if balance.IsNegative() {
		panic(fmt.Sprintf("ledger invariant violated: wallet %s balance %s < 0", companyID, balance))
	}
	return balance, nil
}

func (s *PgxLedgerStore) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	rows, err := s.q(ctx).Query(ctx, `SELECT `+listingColumns+` FROM listings WHERE listing_id = $1`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Listing])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: listing %s", apperrors.ErrNotFound, listingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing %s: %w", listingID, err)
	}
	l := toDomainListing(m)
	return &l, nil
}

// buildListingQuery renders filter as a WHERE clause with positional args.
func buildListingQuery(filter domain.ListingFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if filter.Status != "" {
		add("status = ?", string(filter.Status))
	}
	if filter.SellerID != "" {
		add("seller_id = ?", filter.SellerID)
	}
	if filter.ExcludeSellerID != "" {
		add("seller_id <> ?", filter.ExcludeSellerID)
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	return query + ` ORDER BY seq`, args
}

func (s *PgxLedgerStore) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	return s.listListings(ctx, s.q(ctx), filter)
}

func (s *PgxLedgerStore) listListings(ctx context.Context, q querier, filter domain.ListingFilter) ([]domain.Listing, error) {
	query, args := buildListingQuery(filter)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Listing])
	if err != nil {
		return nil, fmt.Errorf("failed to scan listings: %w", err)
	}
	out := make([]domain.Listing, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainListing(m))
	}
	return out, nil
}

func (s *PgxLedgerStore) PutListing(ctx context.Context, listing domain.Listing) error {
	if listing.ListingID == "" {
		return fmt.Errorf("%w: listing ID is required", apperrors.ErrValidation)
	}
	if !listing.Status.IsValid() {
		return fmt.Errorf("%w: unknown listing status %q", apperrors.ErrValidation, listing.Status)
	}
	m := toModelListing(listing)
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ListingID, m.SellerID, m.SellerName, m.SellerLogo, m.Quantity, m.Price, m.Total,
		m.CreditType, m.Vintage, m.Project, m.Location, m.Status, m.CreatedAt, m.ClosedBy, m.ClosedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: listing %s", apperrors.ErrDuplicate, listing.ListingID)
	}
	if err != nil {
		return fmt.Errorf("failed to save listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// UpdateListingStatus is a single conditional UPDATE; row locking makes
// concurrent callers serialize and only the first sees a matching status.
func (s *PgxLedgerStore) UpdateListingStatus(ctx context.Context, listingID string, change domain.StatusChange) (bool, error) {
	if !domain.CanTransition(change.From, change.To) {
		return false, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidState, change.From, change.To)
	}
	q := s.q(ctx)
	tag, err := q.Exec(ctx, `
		UPDATE listings SET status = $3, closed_by = $4, closed_at = $5
		WHERE listing_id = $1 AND status = $2`,
		listingID, string(change.From), string(change.To), change.ClosedBy, change.At)
	if err != nil {
		return false, fmt.Errorf("failed to update listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE listing_id = $1)`, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check listing %s: %w", listingID, err)
	}
	if !exists {
		return false, fmt.Errorf("%w: listing %s", apperrors.ErrNotFound, listingID)
	}
	return false, nil
}

func (s *PgxLedgerStore) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	m := toModelTransaction(txn)
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.TransactionID, m.Type, m.CompanyID, m.CounterpartyID, m.ListingID, m.Quantity,
		m.Price, m.Amount, m.Method, m.Status, m.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if err != nil {
		return fmt.Errorf("failed to append transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (s *PgxLedgerStore) ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error) {
	return s.listTransactions(ctx, s.q(ctx), companyID, limit)
}

func (s *PgxLedgerStore) listTransactions(ctx context.Context, q querier, companyID string, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE ($1 = '' OR company_id = $1 OR counterparty_id = $1)
		ORDER BY seq DESC`
	args := []any{companyID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainTransaction(m))
	}
	return out, nil
}

// Snapshot reads everything inside one repeatable-read transaction so the
// three parts describe the same instant.
func (s *PgxLedgerStore) Snapshot(ctx context.Context, recentTransactions int) (domain.Snapshot, error) {
	tx, err := s.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer func() { _ = s.Rollback(context.WithoutCancel(ctx), tx) }()

	listings, err := s.listListings(ctx, tx, domain.ListingFilter{Status: domain.ListingActive})
	if err != nil {
		return domain.Snapshot{}, err
	}

	rows, err := tx.Query(ctx, `SELECT company_id, balance, updated_at FROM wallets`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to list wallets: %w", err)
	}
	wallets, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Wallet])
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to scan wallets: %w", err)
	}

	recent, err := s.listTransactions(ctx, tx, "", recentTransactions)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	if err := s.Commit(ctx, tx); err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{
		Listings:           listings,
		Wallets:            make(map[string]decimal.Decimal, len(wallets)),
		RecentTransactions: recent,
	}
	for _, w := range wallets {
		snap.Wallets[w.CompanyID] = w.Balance
	}
	return snap, nil
}
