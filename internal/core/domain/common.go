package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWalletBalance is the balance a company starts with the first time its
// wallet is referenced. No explicit wallet initialisation step exists.
var DefaultWalletBalance = decimal.NewFromInt(2_500_000)

// DefaultRecentTransactionsWindow bounds the transactions carried in a Snapshot.
const DefaultRecentTransactionsWindow = 50

// Now returns the current time in UTC, truncated to microseconds so values
// survive a round trip through Postgres timestamps unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
