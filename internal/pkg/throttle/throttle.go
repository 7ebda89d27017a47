// Package throttle wraps a blocking call so that at most N invocations run at
// once and consecutive invocations start at least a minimum interval apart.
// Excess calls wait in an explicit FIFO queue.
package throttle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrStopped is returned by Do once the throttler has been stopped.
var ErrStopped = errors.New("throttle: stopped")

// Func is the throttled call.
type Func[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Gate is an extra admission check consulted right before every call,
// for example a request quota shared by several processes.
type Gate interface {
	Wait(ctx context.Context) error
}

type options struct {
	name          string
	minInterval   time.Duration
	maxConcurrent int
	queueSize     int
	gate          Gate
	logger        *zap.Logger
}

type Option func(*options)

// WithName sets the name used in log entries.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithMinInterval sets the minimum spacing between call starts. Zero disables spacing.
func WithMinInterval(d time.Duration) Option {
	return func(o *options) { o.minInterval = d }
}

// WithMaxConcurrent sets how many calls may be in flight at once.
func WithMaxConcurrent(n int) Option {
	return func(o *options) { o.maxConcurrent = n }
}

// WithQueueSize sets the queue capacity. Do blocks while the queue is full.
func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

func WithGate(g Gate) Option {
	return func(o *options) { o.gate = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

type result[Resp any] struct {
	resp Resp
	err  error
}

type job[Req, Resp any] struct {
	ctx  context.Context
	req  Req
	done chan result[Resp]
}

// Throttler is safe for concurrent use and is meant to be shared by every
// request of the process.
type Throttler[Req, Resp any] struct {
	fn      Func[Req, Resp]
	opts    options
	limiter *rate.Limiter
	slots   *semaphore.Weighted
	queue   chan *job[Req, Resp]

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup

	waiting  atomic.Int64
	inFlight atomic.Int64

	// lastStart is written by the call goroutine before fn and read by the
	// dispatcher only after that goroutine signalled it has started.
	lastStart time.Time
}

// startSlack covers the hop between the recorded start and fn itself.
const startSlack = time.Millisecond

// New starts the dispatcher. Defaults: 1s interval, 4 concurrent calls, queue of 64.
func New[Req, Resp any](fn Func[Req, Resp], opts ...Option) *Throttler[Req, Resp] {
	o := options{
		name:          "throttle",
		minInterval:   time.Second,
		maxConcurrent: 4,
		queueSize:     64,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxConcurrent < 1 {
		o.maxConcurrent = 1
	}
	if o.queueSize < 0 {
		o.queueSize = 0
	}

	limit := rate.Inf
	if o.minInterval > 0 {
		limit = rate.Every(o.minInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Throttler[Req, Resp]{
		fn:      fn,
		opts:    o,
		limiter: rate.NewLimiter(limit, 1),
		slots:   semaphore.NewWeighted(int64(o.maxConcurrent)),
		queue:   make(chan *job[Req, Resp], o.queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	t.wg.Add(1)
	go t.dispatch()

	return t
}

// Do enqueues the call and blocks until it has run, ctx is done or the
// throttler is stopped.
func (t *Throttler[Req, Resp]) Do(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	if t.ctx.Err() != nil {
		return zero, ErrStopped
	}

	j := &job[Req, Resp]{
		ctx:  ctx,
		req:  req,
		done: make(chan result[Resp], 1),
	}

	t.waiting.Add(1)
	select {
	case t.queue <- j:
	case <-ctx.Done():
		t.waiting.Add(-1)
		return zero, ctx.Err()
	case <-t.ctx.Done():
		t.waiting.Add(-1)
		return zero, ErrStopped
	}

	select {
	case r := <-j.done:
		return r.resp, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.ctx.Done():
		return zero, ErrStopped
	}
}

// InFlight returns the number of calls currently running.
func (t *Throttler[Req, Resp]) InFlight() int {
	return int(t.inFlight.Load())
}

// Waiting returns the number of accepted calls that have not started yet.
func (t *Throttler[Req, Resp]) Waiting() int {
	return int(t.waiting.Load())
}

// Stop rejects new and queued calls and waits for running ones to finish.
func (t *Throttler[Req, Resp]) Stop() {
	t.stopOnce.Do(func() {
		t.opts.logger.Info("Stopping throttler", zap.String("name", t.opts.name))
		t.cancel()
	})
	t.wg.Wait()
	// Do may have enqueued while the dispatcher was draining
	t.drain()
}

func (t *Throttler[Req, Resp]) dispatch() {
	defer t.wg.Done()

	for {
		select {
		case <-t.ctx.Done():
			t.drain()
			return
		case j := <-t.queue:
			t.start(j)
		}
	}
}

// drain rejects jobs left in the queue after Stop.
func (t *Throttler[Req, Resp]) drain() {
	for {
		select {
		case j := <-t.queue:
			t.waiting.Add(-1)
			j.done <- result[Resp]{err: ErrStopped}
		default:
			return
		}
	}
}

// waitSpacing holds the next start until minInterval after the previous one.
func (t *Throttler[Req, Resp]) waitSpacing(ctx context.Context) error {
	if t.opts.minInterval <= 0 || t.lastStart.IsZero() {
		return nil
	}
	d := time.Until(t.lastStart.Add(t.opts.minInterval + startSlack))
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// start admits a single job. Slot first, then spacing, so the interval is
// measured between actual call starts.
func (t *Throttler[Req, Resp]) start(j *job[Req, Resp]) {
	waitCtx, cancel := context.WithCancel(j.ctx)
	stop := context.AfterFunc(t.ctx, cancel)
	defer func() {
		stop()
		cancel()
	}()

	fail := func(err error) {
		t.waiting.Add(-1)
		j.done <- result[Resp]{err: err}
	}

	if err := j.ctx.Err(); err != nil {
		fail(err)
		return
	}

	if err := t.slots.Acquire(waitCtx, 1); err != nil {
		fail(t.waitErr(j, err))
		return
	}

	if err := t.limiter.Wait(waitCtx); err != nil {
		t.slots.Release(1)
		fail(t.waitErr(j, err))
		return
	}

	if t.opts.gate != nil {
		if err := t.opts.gate.Wait(waitCtx); err != nil {
			t.slots.Release(1)
			fail(t.waitErr(j, err))
			return
		}
	}

	if err := t.waitSpacing(waitCtx); err != nil {
		t.slots.Release(1)
		fail(t.waitErr(j, err))
		return
	}

	t.waiting.Add(-1)
	t.inFlight.Add(1)
	t.opts.logger.Debug("Dispatching throttled call",
		zap.String("name", t.opts.name),
		zap.Int("in_flight", t.InFlight()),
		zap.Int("waiting", t.Waiting()))

	started := make(chan struct{})

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.slots.Release(1)
		defer t.inFlight.Add(-1)

		t.lastStart = time.Now()
		close(started)

		resp, err := t.fn(j.ctx, j.req)
		j.done <- result[Resp]{resp: resp, err: err}
	}()

	<-started
}

func (t *Throttler[Req, Resp]) waitErr(j *job[Req, Resp], err error) error {
	if j.ctx.Err() != nil {
		return j.ctx.Err()
	}
	if t.ctx.Err() != nil {
		return ErrStopped
	}
	return err
}
