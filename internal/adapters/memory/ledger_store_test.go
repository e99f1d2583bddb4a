package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/adapters/memory"
	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.LedgerStore
}

func (suite *LedgerStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewLedgerStore()
}

func (suite *LedgerStoreTestSuite) newListing(id, seller string) domain.Listing {
	price := decimal.RequireFromString("25.50")
	return domain.Listing{
		ListingID: id,
		SellerID:  seller,
		Quantity:  100,
		Price:     price,
		Total:     domain.ComputeTotal(100, price),
		Status:    domain.ListingActive,
		CreatedAt: time.Now().UTC(),
	}
}

func (suite *LedgerStoreTestSuite) TestGetWallet_DefaultsUnseenCompany() {
	bal, err := suite.store.GetWallet(suite.ctx, "BEE-KA-S001")

	suite.Require().NoError(err)
	suite.True(bal.Equal(domain.DefaultWalletBalance))
}

func (suite *LedgerStoreTestSuite) TestGetWallet_CustomDefault() {
	store := memory.NewLedgerStore(memory.WithDefaultBalance(decimal.NewFromInt(10)))

	bal, err := store.GetWallet(suite.ctx, "A")

	suite.Require().NoError(err)
	suite.True(bal.Equal(decimal.NewFromInt(10)))
}

func (suite *LedgerStoreTestSuite) TestAdjustWallet_AppliesDelta() {
	bal, err := suite.store.AdjustWallet(suite.ctx, "A", decimal.NewFromInt(-2550))

	suite.Require().NoError(err)
	suite.Equal("2497450", bal.String())

	got, _ := suite.store.GetWallet(suite.ctx, "A")
	suite.True(got.Equal(bal))
}

func (suite *LedgerStoreTestSuite) TestAdjustWallet_InsufficientFundsLeavesBalance() {
	_, err := suite.store.AdjustWallet(suite.ctx, "A", decimal.NewFromInt(-3_000_000))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	got, _ := suite.store.GetWallet(suite.ctx, "A")
	suite.True(got.Equal(domain.DefaultWalletBalance))
}

func (suite *LedgerStoreTestSuite) TestAdjustWallet_ConcurrentDebitsNeverOverdraw() {
	store := memory.NewLedgerStore(memory.WithDefaultBalance(decimal.NewFromInt(100)))
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.AdjustWallet(suite.ctx, "A", decimal.NewFromInt(-7)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	bal, _ := store.GetWallet(suite.ctx, "A")
	suite.Equal(14, succeeded)
	suite.Equal("2", bal.String())
}

func (suite *LedgerStoreTestSuite) TestGetListing_NotFound() {
	_, err := suite.store.GetListing(suite.ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerStoreTestSuite) TestPutListing_Duplicate() {
	l := suite.newListing("L1", "A")
	suite.Require().NoError(suite.store.PutListing(suite.ctx, l))

	err := suite.store.PutListing(suite.ctx, l)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerStoreTestSuite) TestGetListing_ReturnsCopy() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))

	got, err := suite.store.GetListing(suite.ctx, "L1")
	suite.Require().NoError(err)
	got.Status = domain.ListingSold

	again, _ := suite.store.GetListing(suite.ctx, "L1")
	suite.Equal(domain.ListingActive, again.Status)
}

func (suite *LedgerStoreTestSuite) TestUpdateListingStatus_CompareAndSet() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))
	change := domain.StatusChange{From: domain.ListingActive, To: domain.ListingSold, ClosedBy: "B", At: time.Now().UTC()}

	ok, err := suite.store.UpdateListingStatus(suite.ctx, "L1", change)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.store.UpdateListingStatus(suite.ctx, "L1", change)
	suite.Require().NoError(err)
	suite.False(ok, "second compare-and-set must lose")

	l, _ := suite.store.GetListing(suite.ctx, "L1")
	suite.Equal(domain.ListingSold, l.Status)
	suite.Equal("B", l.ClosedBy)
	suite.NotNil(l.ClosedAt)
}

func (suite *LedgerStoreTestSuite) TestUpdateListingStatus_TerminalIsImmutable() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))
	_, err := suite.store.UpdateListingStatus(suite.ctx, "L1", domain.StatusChange{From: domain.ListingActive, To: domain.ListingCancelled})
	suite.Require().NoError(err)

	_, err = suite.store.UpdateListingStatus(suite.ctx, "L1", domain.StatusChange{From: domain.ListingCancelled, To: domain.ListingSold})

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	l, _ := suite.store.GetListing(suite.ctx, "L1")
	suite.Equal(domain.ListingCancelled, l.Status)
}

func (suite *LedgerStoreTestSuite) TestUpdateListingStatus_ConcurrentExactlyOneWinner() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))
	var wg sync.WaitGroup
	wins := make(chan string, 20)

	for i := 0; i < 20; i++ {
		buyer := fmt.Sprintf("buyer-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := suite.store.UpdateListingStatus(suite.ctx, "L1", domain.StatusChange{From: domain.ListingActive, To: domain.ListingSold, ClosedBy: buyer})
			if err == nil && ok {
				wins <- buyer
			}
		}()
	}
	wg.Wait()
	close(wins)

	suite.Len(wins, 1)
}

func (suite *LedgerStoreTestSuite) TestListListings_FilterAndOrder() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L2", "B")))
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L3", "A")))
	_, err := suite.store.UpdateListingStatus(suite.ctx, "L3", domain.StatusChange{From: domain.ListingActive, To: domain.ListingCancelled})
	suite.Require().NoError(err)

	active, _ := suite.store.ListListings(suite.ctx, domain.ListingFilter{Status: domain.ListingActive})
	suite.Require().Len(active, 2)
	suite.Equal("L1", active[0].ListingID)
	suite.Equal("L2", active[1].ListingID)

	others, _ := suite.store.ListListings(suite.ctx, domain.ListingFilter{Status: domain.ListingActive, ExcludeSellerID: "A"})
	suite.Require().Len(others, 1)
	suite.Equal("L2", others[0].ListingID)

	mine, _ := suite.store.ListListings(suite.ctx, domain.ListingFilter{SellerID: "A"})
	suite.Len(mine, 2)
}

func (suite *LedgerStoreTestSuite) TestAppendTransaction_RejectsMalformed() {
	err := suite.store.AppendTransaction(suite.ctx, domain.Transaction{Type: domain.TxnDeposit})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerStoreTestSuite) TestListTransactions_NewestFirstFilteredAndLimited() {
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		suite.Require().NoError(suite.store.AppendTransaction(suite.ctx, domain.Transaction{
			TransactionID: fmt.Sprintf("T%d", i),
			Type:          domain.TxnDeposit,
			CompanyID:     []string{"A", "B"}[i%2],
			Amount:        decimal.NewFromInt(int64(i + 1)),
			Status:        domain.TxnCompleted,
			CreatedAt:     now,
		}))
	}

	forA, _ := suite.store.ListTransactions(suite.ctx, "A", 2)
	suite.Require().Len(forA, 2)
	suite.Equal("T4", forA[0].TransactionID)
	suite.Equal("T2", forA[1].TransactionID)

	all, _ := suite.store.ListTransactions(suite.ctx, "", 0)
	suite.Len(all, 5)
}

func (suite *LedgerStoreTestSuite) TestSnapshot_PointInTimeCopy() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "A")))
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L2", "A")))
	_, err := suite.store.UpdateListingStatus(suite.ctx, "L2", domain.StatusChange{From: domain.ListingActive, To: domain.ListingSold})
	suite.Require().NoError(err)
	_, err = suite.store.AdjustWallet(suite.ctx, "A", decimal.NewFromInt(5))
	suite.Require().NoError(err)
	for i := 0; i < 3; i++ {
		suite.Require().NoError(suite.store.AppendTransaction(suite.ctx, domain.Transaction{
			TransactionID: fmt.Sprintf("T%d", i),
			Type:          domain.TxnDeposit,
			CompanyID:     "A",
			Amount:        decimal.NewFromInt(1),
			CreatedAt:     time.Now().UTC(),
		}))
	}

	snap, err := suite.store.Snapshot(suite.ctx, 2)
	suite.Require().NoError(err)

	suite.Require().Len(snap.Listings, 1)
	suite.Equal("L1", snap.Listings[0].ListingID)
	suite.Equal("2500005", snap.Wallets["A"].String())
	suite.Require().Len(snap.RecentTransactions, 2)
	suite.Equal("T1", snap.RecentTransactions[0].TransactionID)
	suite.Equal("T2", snap.RecentTransactions[1].TransactionID)

	// later writes do not leak into an already taken snapshot
	_, err = suite.store.AdjustWallet(suite.ctx, "A", decimal.NewFromInt(5))
	suite.Require().NoError(err)
	suite.Equal("2500005", snap.Wallets["A"].String())
}

func (suite *LedgerStoreTestSuite) deposit(id, company string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Type:          domain.TxnDeposit,
		CompanyID:     company,
		Amount:        decimal.NewFromInt(1),
		Status:        domain.TxnCompleted,
		CreatedAt:     time.Now().UTC(),
	}
}

func (suite *LedgerStoreTestSuite) TestRunInTx_FailureUndoesEveryWrite() {
	suite.Require().NoError(suite.store.PutListing(suite.ctx, suite.newListing("L1", "S")))
	before, err := suite.store.Snapshot(suite.ctx, 10)
	suite.Require().NoError(err)
	boom := errors.New("boom")

	err = suite.store.RunInTx(suite.ctx, func(ctx context.Context) error {
		if _, err := suite.store.AdjustWallet(ctx, "B", decimal.NewFromInt(-2550)); err != nil {
			return err
		}
		ok, err := suite.store.UpdateListingStatus(ctx, "L1", domain.StatusChange{
			From: domain.ListingActive, To: domain.ListingSold, ClosedBy: "B", At: time.Now().UTC(),
		})
		if err != nil || !ok {
			return fmt.Errorf("cas failed: %v", err)
		}
		if _, err := suite.store.AdjustWallet(ctx, "S", decimal.NewFromInt(2550)); err != nil {
			return err
		}
		if err := suite.store.PutListing(ctx, suite.newListing("L2", "S")); err != nil {
			return err
		}
		if err := suite.store.AppendTransaction(ctx, suite.deposit("T1", "S")); err != nil {
			return err
		}
		return boom
	})

	suite.ErrorIs(err, boom)
	after, err := suite.store.Snapshot(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Equal(before.Listings, after.Listings)
	suite.True(after.Wallets["B"].Equal(domain.DefaultWalletBalance))
	suite.True(after.Wallets["S"].Equal(domain.DefaultWalletBalance))
	suite.Empty(after.RecentTransactions)
	_, err = suite.store.GetListing(suite.ctx, "L2")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerStoreTestSuite) TestRunInTx_PanicUndoesWrites() {
	suite.Panics(func() {
		_ = suite.store.RunInTx(suite.ctx, func(ctx context.Context) error {
			_, _ = suite.store.AdjustWallet(ctx, "A", decimal.NewFromInt(7))
			panic("store fault")
		})
	})

	bal, err := suite.store.GetWallet(suite.ctx, "A")
	suite.Require().NoError(err)
	suite.True(bal.Equal(domain.DefaultWalletBalance))
}

func (suite *LedgerStoreTestSuite) TestRunInTx_NestedJoinsOuterAndSuccessKeepsWrites() {
	err := suite.store.RunInTx(suite.ctx, func(ctx context.Context) error {
		if _, err := suite.store.AdjustWallet(ctx, "A", decimal.NewFromInt(5)); err != nil {
			return err
		}
		return suite.store.RunInTx(ctx, func(ctx context.Context) error {
			return suite.store.AppendTransaction(ctx, suite.deposit("T1", "A"))
		})
	})
	suite.Require().NoError(err)

	err = suite.store.RunInTx(suite.ctx, func(ctx context.Context) error {
		_, _ = suite.store.AdjustWallet(ctx, "A", decimal.NewFromInt(5))
		// an inner failure surfaces through the outer unit and rolls it all back
		return suite.store.RunInTx(ctx, func(ctx context.Context) error {
			if err := suite.store.AppendTransaction(ctx, suite.deposit("T2", "A")); err != nil {
				return err
			}
			return errors.New("inner")
		})
	})
	suite.Error(err)

	bal, _ := suite.store.GetWallet(suite.ctx, "A")
	suite.Equal("2500005", bal.String())
	txns, _ := suite.store.ListTransactions(suite.ctx, "A", 0)
	suite.Require().Len(txns, 1)
	suite.Equal("T1", txns[0].TransactionID)
}

func TestLedgerStore(t *testing.T) {
	suite.Run(t, new(LedgerStoreTestSuite))
}
