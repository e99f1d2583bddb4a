package services

import (
	"context"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
)

// Observer receives pushed envelopes. A returned error disconnects the observer.
type Observer interface {
	Deliver(ctx context.Context, env domain.Envelope) error
}

// Disconnecter is implemented by observers holding a connection. The notifier
// calls Disconnect once it stops delivering to the observer, for any reason.
type Disconnecter interface {
	Disconnect()
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, env domain.Envelope) error

// Deliver calls f.
func (f ObserverFunc) Deliver(ctx context.Context, env domain.Envelope) error {
	return f(ctx, env)
}

// EventPublisher is what the ledger services need: fire and forget.
// Publish never blocks on observers and cannot fail the caller.
type EventPublisher interface {
	Publish(ev domain.Event)
}

// ChangeNotifierSvc fans ledger events out to observers.
type ChangeNotifierSvc interface {
	EventPublisher

	// Subscribe registers obs and delivers a full Snapshot to it before any
	// incremental event.
	Subscribe(ctx context.Context, obs Observer) (unsubscribe func(), err error)

	// ActiveObservers returns the number of registered observers.
	ActiveObservers() int
}
