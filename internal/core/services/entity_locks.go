package services

import (
	"sort"
	"sync"
)

// WalletKey and ListingKey name the lockable entities.
func WalletKey(companyID string) string { return "wallet:" + companyID }
func ListingKey(listingID string) string { return "listing:" + listingID }

// EntityLocks is a table of per-entity mutexes. Lock takes any number of keys
// in ascending order, so two operations sharing entities cannot deadlock.
// Entries are dropped once nobody holds or waits for them.
type EntityLocks struct {
	mu    sync.Mutex
	locks map[string]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

func NewEntityLocks() *EntityLocks {
	return &EntityLocks{locks: make(map[string]*entityLock)}
}

// Lock blocks until every key is held and returns the function releasing them.
func (l *EntityLocks) Lock(keys ...string) (unlock func()) {
	keys = normalizeKeys(keys)

	held := make([]*entityLock, 0, len(keys))
	for _, key := range keys {
		el := l.acquire(key)
		el.mu.Lock()
		held = append(held, el)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				l.release(keys[i])
			}
		})
	}
}

// Len reports how many entities currently have a lock entry.
func (l *EntityLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *EntityLocks) acquire(key string) *entityLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	el, ok := l.locks[key]
	if !ok {
		el = &entityLock{}
		l.locks[key] = el
	}
	el.refs++
	return el
}

func (l *EntityLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	el := l.locks[key]
	el.refs--
	if el.refs == 0 {
		delete(l.locks, key)
	}
}

func normalizeKeys(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return out[:n]
}
