package service

import (
	"sync"
	"time"
)

// slotLocker serializes admissions and promotions per shop+slot within this
// process. Cross-instance races are backstopped by the partial unique index
// on waitlist positions.
type slotLocker struct {
	mu    sync.Mutex
	slots map[string]*slotEntry
}

type slotEntry struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocker() *slotLocker {
	return &slotLocker{slots: make(map[string]*slotEntry)}
}

func slotKey(shopID string, slot time.Time) string {
	return shopID + "|" + slot.UTC().Format(time.RFC3339)
}

// Acquire locks the given shop+slot and returns the release func. Entries
// are refcounted so the map does not grow with every slot ever touched.
func (l *slotLocker) Acquire(shopID string, slot time.Time) func() {
	key := slotKey(shopID, slot)

	l.mu.Lock()
	entry, ok := l.slots[key]
	if !ok {
		entry = &slotEntry{}
		l.slots[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
	}
}
