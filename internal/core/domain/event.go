package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType tags every message pushed to observers.
type EventType string

const (
	EventSnapshot            EventType = "SNAPSHOT"
	EventListingCreated      EventType = "LISTING_CREATED"
	EventListingCancelled    EventType = "LISTING_CANCELLED"
	EventSaleCompleted       EventType = "SALE_COMPLETED"
	EventWalletUpdated       EventType = "WALLET_UPDATED"
	EventTransactionRecorded EventType = "TRANSACTION_RECORDED"
	EventPresenceChanged     EventType = "PRESENCE_CHANGED"
)

// Event is the closed set of notifications. Consumers switch on the concrete
// type; the unexported marker keeps the set closed to this package.
type Event interface {
	Type() EventType
	isEvent()
}

// ListingCreated is published after a listing is stored as active.
type ListingCreated struct {
	Listing Listing `json:"listing"`
}

// ListingWithdrawn is published after its seller cancels a listing
// (active -> cancelled).
type ListingWithdrawn struct {
	Listing Listing `json:"listing"`
}

// SaleCompleted is published after a purchase settles.
type SaleCompleted struct {
	Listing     Listing     `json:"listing"`
	BuyerID     string      `json:"buyerID"`
	Transaction Transaction `json:"transaction"`
}

// WalletUpdated carries the absolute balance so observers can apply it idempotently.
type WalletUpdated struct {
	CompanyID string          `json:"companyID"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransactionRecorded is published for audit records that have no richer event
// (deposits and withdrawals).
type TransactionRecorded struct {
	Transaction Transaction `json:"transaction"`
}

// PresenceChanged reports the number of connected observers.
type PresenceChanged struct {
	ActiveObservers int `json:"activeObservers"`
}

// Snapshot is a point-in-time copy of the ledger sent to new observers.
type Snapshot struct {
	Listings           []Listing                  `json:"listings"`
	Wallets            map[string]decimal.Decimal `json:"wallets"`
	RecentTransactions []Transaction              `json:"recentTransactions"`
}

func (ListingCreated) Type() EventType      { return EventListingCreated }
func (ListingWithdrawn) Type() EventType    { return EventListingCancelled }
func (SaleCompleted) Type() EventType       { return EventSaleCompleted }
func (WalletUpdated) Type() EventType       { return EventWalletUpdated }
func (TransactionRecorded) Type() EventType { return EventTransactionRecorded }
func (PresenceChanged) Type() EventType     { return EventPresenceChanged }
func (Snapshot) Type() EventType            { return EventSnapshot }

func (ListingCreated) isEvent()      {}
func (ListingWithdrawn) isEvent()    {}
func (SaleCompleted) isEvent()       {}
func (WalletUpdated) isEvent()       {}
func (TransactionRecorded) isEvent() {}
func (PresenceChanged) isEvent()     {}
func (Snapshot) isEvent()            {}

// Envelope is the wire form of a pushed event. Seq is strictly increasing in
// delivery order for each observer. Events that follow a snapshot may repeat
// changes it already holds, so observers deduplicate listings and
// transactions by id.
type Envelope struct {
	EventType EventType `json:"eventType"`
	Payload   Event     `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	Seq       uint64    `json:"seq"`
}

// NewEnvelope wraps ev for delivery.
func NewEnvelope(ev Event, seq uint64, at time.Time) Envelope {
	return Envelope{EventType: ev.Type(), Payload: ev, Timestamp: at, Seq: seq}
}

// ListingID returns the listing an event is about, or "" when it concerns no listing.
func ListingID(ev Event) string {
	switch e := ev.(type) {
	case ListingCreated:
		return e.Listing.ListingID
	case ListingWithdrawn:
		return e.Listing.ListingID
	case SaleCompleted:
		return e.Listing.ListingID
	case TransactionRecorded:
		return e.Transaction.ListingID
	}
	return ""
}
