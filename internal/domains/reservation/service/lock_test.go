package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotLocker_SerializesSameSlot(t *testing.T) {
	locker := newSlotLocker()
	slot := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	counter := 0
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			release := locker.Acquire("shop-a", slot)
			defer release()

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Empty(t, locker.slots, "released entries should be evicted")
}

func TestSlotLocker_IndependentSlots(t *testing.T) {
	locker := newSlotLocker()
	slot := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	releaseA := locker.Acquire("shop-a", slot)
	defer releaseA()

	done := make(chan struct{})

	go func() {
		release := locker.Acquire("shop-b", slot)
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("different shops must not contend for the same lock")
	}
}
