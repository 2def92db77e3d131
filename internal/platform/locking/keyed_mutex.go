package locking

import (
	"context"
	"sort"
	"sync"
)

// KeyedMutex provides per-key mutual exclusion with bounded waits. The
// transaction engine uses one instance per engine as its serialization gate,
// keyed by account ID, so tests can run independent engines with independent
// locks.
type KeyedMutex struct {
	mu   sync.Mutex // guards sems
	sems map[string]chan struct{}
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		sems: make(map[string]chan struct{}),
	}
}

func (k *KeyedMutex) sem(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.sems[key]
	if !ok {
		s = make(chan struct{}, 1)
		k.sems[key] = s
	}
	return s
}

// Acquire locks every key and returns a release function. Keys are
// deduplicated and taken in sorted order, so two operations touching the same
// pair of accounts can never deadlock each other. If ctx is done before all
// locks are held, everything acquired so far is released and ctx.Err()
// is returned.
func (k *KeyedMutex) Acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			sorted = append(sorted, key)
		}
	}
	sort.Strings(sorted)

	acquired := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			<-acquired[i]
		}
	}

	for _, key := range sorted {
		s := k.sem(key)
		select {
		case s <- struct{}{}:
			acquired = append(acquired, s)
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		}
	}

	return release, nil
}
