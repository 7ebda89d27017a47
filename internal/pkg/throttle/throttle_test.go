package throttle

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottler_MaxConcurrent(t *testing.T) {
	release := make(chan struct{})
	var current, peak atomic.Int64

	th := New(func(ctx context.Context, n int) (int, error) {
		c := current.Add(1)
		for {
			p := peak.Load()
			if c <= p || peak.CompareAndSwap(p, c) {
				break
			}
		}
		<-release
		current.Add(-1)
		return n * 2, nil
	}, WithMinInterval(0), WithMaxConcurrent(4))
	defer th.Stop()

	var wg sync.WaitGroup
	results := make([]int, 12)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := th.Do(context.Background(), i)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}

	require.Eventually(t, func() bool {
		return th.InFlight() == 4 && th.Waiting() == 8
	}, time.Second, 5*time.Millisecond)

	close(release)
	wg.Wait()

	assert.Equal(t, int64(4), peak.Load())
	for i, r := range results {
		assert.Equal(t, i*2, r)
	}
}

func TestThrottler_MinInterval(t *testing.T) {
	const interval = 40 * time.Millisecond

	var mu sync.Mutex
	var starts []time.Time

	th := New(func(ctx context.Context, _ struct{}) (struct{}, error) {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		return struct{}{}, nil
	}, WithMinInterval(interval), WithMaxConcurrent(4))
	defer th.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := th.Do(context.Background(), struct{}{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, starts, 8)
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	for i := 1; i < len(starts); i++ {
		// каждый интервал между стартами, не только суммарно
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval, "gap %d", i)
	}
}

func TestThrottler_FIFO(t *testing.T) {
	block := make(chan struct{})
	var mu sync.Mutex
	var order []int

	th := New(func(ctx context.Context, n int) (int, error) {
		if n == 0 {
			<-block
		}
		mu.Lock()
		order = append(order, n)
		mu.Unlock()
		return n, nil
	}, WithMinInterval(0), WithMaxConcurrent(1))
	defer th.Stop()

	var wg sync.WaitGroup
	submit := func(n int) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := th.Do(context.Background(), n)
			assert.NoError(t, err)
		}()
	}

	submit(0)
	require.Eventually(t, func() bool { return th.InFlight() == 1 }, time.Second, time.Millisecond)

	for i := 1; i <= 5; i++ {
		submit(i)
		require.Eventually(t, func() bool { return th.Waiting() == i }, time.Second, time.Millisecond)
	}

	close(block)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

func TestThrottler_CancelWhileQueued(t *testing.T) {
	block := make(chan struct{})
	var calls atomic.Int64

	th := New(func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 0 {
			<-block
		}
		return n, nil
	}, WithMinInterval(0), WithMaxConcurrent(1))
	defer th.Stop()

	go func() { _, _ = th.Do(context.Background(), 0) }()
	require.Eventually(t, func() bool { return th.InFlight() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := th.Do(ctx, 1)
		errCh <- err
	}()
	require.Eventually(t, func() bool { return th.Waiting() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(block)
	require.Eventually(t, func() bool { return th.Waiting() == 0 && th.InFlight() == 0 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

type countingGate struct {
	calls atomic.Int64
	err   error
}

func (g *countingGate) Wait(ctx context.Context) error {
	g.calls.Add(1)
	return g.err
}

func TestThrottler_Gate(t *testing.T) {
	gate := &countingGate{}
	th := New(func(ctx context.Context, n int) (int, error) { return n, nil },
		WithMinInterval(0), WithGate(gate))
	defer th.Stop()

	for i := 0; i < 3; i++ {
		_, err := th.Do(context.Background(), i)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), gate.calls.Load())

	var ran atomic.Bool
	denied := &countingGate{err: errors.New("quota backend down")}
	th2 := New(func(ctx context.Context, n int) (int, error) {
		ran.Store(true)
		return n, nil
	}, WithMinInterval(0), WithGate(denied))
	defer th2.Stop()

	_, err := th2.Do(context.Background(), 1)
	assert.EqualError(t, err, "quota backend down")
	assert.False(t, ran.Load())
}

func TestThrottler_PropagatesCallError(t *testing.T) {
	want := errors.New("upstream 500")
	th := New(func(ctx context.Context, n int) (int, error) { return 0, want }, WithMinInterval(0))
	defer th.Stop()

	_, err := th.Do(context.Background(), 1)
	assert.ErrorIs(t, err, want)
}

func TestThrottler_Stop(t *testing.T) {
	th := New(func(ctx context.Context, n int) (int, error) { return n, nil })
	th.Stop()

	_, err := th.Do(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStopped)

	// idempotent
	th.Stop()
}

func TestThrottler_StopRejectsQueued(t *testing.T) {
	release := make(chan struct{})

	th := New(func(ctx context.Context, n int) (int, error) {
		<-release
		return n, nil
	}, WithMinInterval(0), WithMaxConcurrent(1), WithQueueSize(8))

	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func(i int) {
			_, err := th.Do(context.Background(), i)
			errs <- err
		}(i)
	}

	require.Eventually(t, func() bool {
		return th.InFlight() == 1 && th.Waiting() == 3
	}, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		th.Stop()
		close(stopped)
	}()
	close(release)
	<-stopped

	stoppedCalls := 0
	for i := 0; i < 4; i++ {
		if errors.Is(<-errs, ErrStopped) {
			stoppedCalls++
		}
	}
	assert.GreaterOrEqual(t, stoppedCalls, 3)
	assert.Zero(t, th.Waiting())
	assert.Zero(t, th.InFlight())
}
