package csrf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenWithoutConsentIsEmpty(t *testing.T) {
	t.Parallel()
	p := NewProvider(ConsentFunc(func() bool { return false }), func(context.Context) (string, error) {
		t.Error("fetch must not run without consent")
		return "", nil
	})
	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()
	var fetches int32
	release := make(chan struct{})
	p := NewProvider(nil, func(context.Context) (string, error) {
		atomic.AddInt32(&fetches, 1)
		<-release
		return "tok-1", nil
	})

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Token(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond) // let all callers reach the wait
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&fetches))
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok-1", results[i])
	}

	// A resolved token short-circuits without a new fetch.
	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 1, atomic.LoadInt32(&fetches))
}

func TestInvalidateRefreshesEagerly(t *testing.T) {
	t.Parallel()
	var fetches int32
	p := NewProvider(nil, func(context.Context) (string, error) {
		n := atomic.AddInt32(&fetches, 1)
		return fmt.Sprintf("tok-%d", n), nil
	})

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	p.Invalidate()

	tok, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok, "token fetched before invalidation must never be returned")
	assert.EqualValues(t, 2, atomic.LoadInt32(&fetches), "invalidate starts the refresh itself")
}

func TestFetchFailureSharedThenForgotten(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var fetches int32
	p := NewProvider(nil, func(context.Context) (string, error) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			return "", boom
		}
		return "tok-2", nil
	})

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Token(context.Background())
		}(i)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if err != nil {
			failed++
			var te *TokenError
			require.ErrorAs(t, err, &te)
			assert.ErrorIs(t, err, boom)
		}
	}
	assert.Positive(t, failed, "at least the waiters of the failed fetch see the error")

	// Failure is not cached: the next call starts a brand-new fetch.
	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}
