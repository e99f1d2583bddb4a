// Package notifier pushes ledger changes to subscribed observers.
//
// Every subscriber owns a bounded FIFO queue drained by its own goroutine.
// Publish only enqueues, so it never waits on an observer; a subscriber
// whose queue is full, or whose Deliver call fails, is disconnected without
// affecting anyone else. A new subscriber is registered before its store
// snapshot is read and receives that snapshot first, so no event committed
// after the snapshot can be missed. An event whose change the snapshot
// already contains may still follow it; observers deduplicate listings and
// transactions by id, and wallet events carry absolute balances.
package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portsrepo "github.com/SscSPs/carbonx_exchange/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/platform/metrics"
)

const (
	DefaultQueueSize       = 256
	DefaultDeliveryTimeout = 5 * time.Second

	// minQueueSize leaves room for events published while a new subscriber's
	// snapshot is read and the presence event that follows it.
	minQueueSize = 16
)

var (
	// ErrClosed is returned by Subscribe after Close.
	ErrClosed = errors.New("notifier closed")
	// ErrQueueOverflow is returned by Subscribe when events outran the
	// subscriber's queue while its snapshot was being read.
	ErrQueueOverflow = errors.New("subscriber queue overflowed during snapshot")
)

type subscriber struct {
	id    uint64
	obs   portssvc.Observer
	queue chan domain.Envelope
	done  chan struct{}
}

// Notifier implements portssvc.ChangeNotifierSvc.
type Notifier struct {
	store           portsrepo.SnapshotReader
	recentWindow    int
	queueSize       int
	deliveryTimeout time.Duration
	logger          *slog.Logger
	metrics         *metrics.Metrics
	now             func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.Mutex
	seq    uint64
	nextID uint64
	subs   map[uint64]*subscriber
	closed bool
}

var _ portssvc.ChangeNotifierSvc = (*Notifier)(nil)

// Option configures a Notifier.
type Option func(*Notifier)

// WithQueueSize bounds how many undelivered envelopes a subscriber may hold.
func WithQueueSize(n int) Option {
	return func(nt *Notifier) {
		nt.queueSize = n
	}
}

// WithDeliveryTimeout bounds a single Deliver call.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(nt *Notifier) {
		nt.deliveryTimeout = d
	}
}

// WithRecentTransactions sets the transaction window carried by snapshots.
func WithRecentTransactions(n int) Option {
	return func(nt *Notifier) {
		nt.recentWindow = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(nt *Notifier) {
		nt.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(nt *Notifier) {
		nt.metrics = m
	}
}

// New creates a notifier reading snapshots from store.
func New(store portsrepo.SnapshotReader, opts ...Option) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		store:           store,
		recentWindow:    domain.DefaultRecentTransactionsWindow,
		queueSize:       DefaultQueueSize,
		deliveryTimeout: DefaultDeliveryTimeout,
		logger:          slog.Default(),
		now:             domain.Now,
		baseCtx:         ctx,
		cancel:          cancel,
		subs:            make(map[uint64]*subscriber),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.queueSize < minQueueSize {
		n.queueSize = minQueueSize
	}
	return n
}

// Subscribe registers obs. The first envelope obs receives is the snapshot.
//
// The subscriber is registered before the snapshot is read, so events
// published meanwhile wait in its queue behind the snapshot. The store read
// happens outside the notifier lock and never holds up Publish.
func (n *Notifier) Subscribe(ctx context.Context, obs portssvc.Observer) (func(), error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil, ErrClosed
	}
	n.nextID++
	n.seq++
	snapSeq := n.seq
	sub := &subscriber{
		id:    n.nextID,
		obs:   obs,
		queue: make(chan domain.Envelope, n.queueSize),
		done:  make(chan struct{}),
	}
	n.subs[sub.id] = sub
	n.metrics.SetActiveObservers(len(n.subs))
	n.mu.Unlock()

	snap, err := n.store.Snapshot(ctx, n.recentWindow)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.dropLocked(sub.id)
		return nil, err
	}
	if _, ok := n.subs[sub.id]; !ok {
		if n.closed {
			return nil, ErrClosed
		}
		return nil, ErrQueueOverflow
	}
	n.metrics.EventPublished(string(domain.EventSnapshot))

	n.wg.Add(1)
	go n.deliverLoop(sub, domain.NewEnvelope(snap, snapSeq, n.now()))

	n.publishLocked(domain.PresenceChanged{ActiveObservers: len(n.subs)})
	n.logger.Debug("Observer subscribed", slog.Uint64("observer_id", sub.id), slog.Int("active_observers", len(n.subs)))

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(sub.id, nil) })
	}, nil
}

// Publish fans ev out to every subscriber. It never blocks on delivery.
func (n *Notifier) Publish(ev domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.publishLocked(ev)
}

func (n *Notifier) publishLocked(ev domain.Event) {
	n.seq++
	env := domain.NewEnvelope(ev, n.seq, n.now())
	n.metrics.EventPublished(string(ev.Type()))

	var overflowed []uint64
	for id, sub := range n.subs {
		select {
		case sub.queue <- env:
		default:
			overflowed = append(overflowed, id)
		}
	}
	if len(overflowed) == 0 {
		return
	}
	for _, id := range overflowed {
		n.logger.Warn("Dropping slow observer",
			slog.Uint64("observer_id", id),
			slog.Int("queue_size", n.queueSize),
			slog.String("event_type", string(ev.Type())),
			slog.String("listing_id", domain.ListingID(ev)))
		n.dropLocked(id)
		n.metrics.ObserverDropped()
	}
	n.publishLocked(domain.PresenceChanged{ActiveObservers: len(n.subs)})
}

// ActiveObservers returns the number of registered observers.
func (n *Notifier) ActiveObservers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Close disconnects every observer and waits for delivery goroutines to exit.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	for id := range n.subs {
		n.dropLocked(id)
	}
	n.mu.Unlock()

	n.cancel()
	n.wg.Wait()
}

func (n *Notifier) remove(id uint64, cause error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[id]; !ok {
		return
	}
	if cause != nil {
		n.logger.Info("Observer disconnected", slog.Uint64("observer_id", id), slog.String("error", cause.Error()))
		n.metrics.ObserverDropped()
	}
	n.dropLocked(id)
	if !n.closed {
		n.publishLocked(domain.PresenceChanged{ActiveObservers: len(n.subs)})
	}
}

func (n *Notifier) dropLocked(id uint64) {
	sub, ok := n.subs[id]
	if !ok {
		return
	}
	delete(n.subs, id)
	close(sub.done)
	n.metrics.SetActiveObservers(len(n.subs))
}

func (n *Notifier) deliverLoop(sub *subscriber, first domain.Envelope) {
	defer n.wg.Done()
	if d, ok := sub.obs.(portssvc.Disconnecter); ok {
		defer d.Disconnect()
	}
	if !n.deliver(sub, first) {
		return
	}
	for {
		select {
		case <-sub.done:
			return
		case env := <-sub.queue:
			if !n.deliver(sub, env) {
				return
			}
		}
	}
}

// deliver hands env to the observer and removes the subscriber on failure.
func (n *Notifier) deliver(sub *subscriber, env domain.Envelope) bool {
	// done wins over pending envelopes once the subscriber is gone
	select {
	case <-sub.done:
		return false
	default:
	}
	ctx, cancel := context.WithTimeout(n.baseCtx, n.deliveryTimeout)
	err := sub.obs.Deliver(ctx, env)
	cancel()
	if err != nil {
		n.remove(sub.id, err)
		return false
	}
	return true
}
