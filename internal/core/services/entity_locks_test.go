package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestEntityLocks_OppositeOrderDoesNotDeadlock(t *testing.T) {
	locks := services.NewEntityLocks()
	a, b := services.WalletKey("A"), services.WalletKey("B")
	var wg sync.WaitGroup

	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(a, b)
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := locks.Lock(b, a)
			unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock acquisition deadlocked")
	}
	assert.Equal(t, 0, locks.Len())
}

func TestEntityLocks_MutualExclusion(t *testing.T) {
	locks := services.NewEntityLocks()
	key := services.ListingKey("ML-1")
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// duplicated keys must not self-deadlock
			unlock := locks.Lock(key, key)
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestEntityLocks_UnlockIsIdempotent(t *testing.T) {
	locks := services.NewEntityLocks()
	unlock := locks.Lock(services.WalletKey("A"))

	unlock()
	assert.NotPanics(t, unlock)
	assert.Equal(t, 0, locks.Len())
}
