package locking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanthosh/simple_bank_system/internal/platform/locking"
)

func TestAcquire_MutualExclusion(t *testing.T) {
	km := locking.NewKeyedMutex()
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := km.Acquire(ctx, "acct")
			assert.NoError(t, err)
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestAcquire_IndependentKeysDoNotBlock(t *testing.T) {
	km := locking.NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := km.Acquire(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestAcquire_TimesOutWhenHeld(t *testing.T) {
	km := locking.NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = km.Acquire(ctx, "a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The failed acquire must not leave "b" held.
	releaseB, err := km.Acquire(context.Background(), "b")
	require.NoError(t, err)
	releaseB()
}

func TestAcquire_CrossingOrdersDoNotDeadlock(t *testing.T) {
	km := locking.NewKeyedMutex()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			release, err := km.Acquire(ctx, "a", "b")
			assert.NoError(t, err)
			release()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			release, err := km.Acquire(ctx, "b", "a")
			assert.NoError(t, err)
			release()
		}
	}()

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
}

func TestAcquire_DuplicateKeys(t *testing.T) {
	km := locking.NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "a", "a")
	require.NoError(t, err)
	release()

	// The key must be free again afterwards.
	release, err = km.Acquire(context.Background(), "a")
	require.NoError(t, err)
	release()
}
