package inference

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
)

// ErrSchedulerClosed rejects requests still queued when the scheduler
// shuts down.
var ErrSchedulerClosed = errors.New("inference scheduler closed")

// request is a queued unit of work. It is owned by the scheduler from
// enqueue until its future settles and is never shared across requests.
type request struct {
	req       llm.Request
	fut       *Future
	cacheKey  string
	purpose   string
	createdAt time.Time
	attempts  int
}

// Scheduler coordinates all outbound provider calls. Requests are queued
// FIFO and drained in bounded batches by a single dedicated goroutine;
// within a batch, dispatch is concurrent and each request's outcome is
// handled independently. Retry with exponential backoff is applied per
// request. The cache is consulted on enqueue, so repeated prompts within
// the TTL cost no provider calls.
type Scheduler struct {
	provider llm.Provider
	cache    *Cache
	cfg      Config

	mu     sync.Mutex
	queue  []*request
	closed bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a Scheduler and starts its drain goroutine.
func NewScheduler(provider llm.Provider, cache *Cache, cfg Config) *Scheduler {
	s := &Scheduler{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.drain()
	return s
}

// Enqueue submits a request and returns its Future immediately. A cache
// hit resolves the future on the spot without queuing. The context is used
// only to carry the purpose label; cancelling it does not withdraw an
// already-queued request (the caller simply stops waiting).
func (s *Scheduler) Enqueue(ctx context.Context, req llm.Request) *Future {
	key := CacheKey(s.provider.ModelID(), req)

	if content, ok := s.cache.Lookup(key); ok {
		return resolvedFuture(&llm.Response{
			Content:    content,
			Model:      s.provider.ModelID(),
			StopReason: "end",
		})
	}

	r := &request{
		req:       req,
		fut:       newFuture(),
		cacheKey:  key,
		purpose:   llm.PurposeFrom(ctx),
		createdAt: time.Now(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		r.fut.reject(ErrSchedulerClosed)
		return r.fut
	}
	s.queue = append(s.queue, r)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return r.fut
}

// QueueLen reports the number of requests waiting for dispatch.
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Close stops the drain loop and rejects any requests still queued.
// In-flight dispatches are allowed to settle.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	close(s.stop)
	<-s.done

	for _, r := range pending {
		r.fut.reject(ErrSchedulerClosed)
	}
}

// drain is the single queue consumer. Owning the queue head in one
// goroutine is what guarantees FIFO-at-batch-granularity: batch k is fully
// dispatched, and settled, before batch k+1 starts.
func (s *Scheduler) drain() {
	defer close(s.done)

	for {
		batch := s.takeBatch()
		if batch == nil {
			select {
			case <-s.wake:
				continue
			case <-s.stop:
				return
			}
		}

		var wg sync.WaitGroup
		for _, r := range batch {
			wg.Add(1)
			go func(r *request) {
				defer wg.Done()
				s.dispatch(r)
			}(r)
		}
		wg.Wait()

		select {
		case <-time.After(s.cfg.BatchWait):
		case <-s.stop:
			return
		}
	}
}

// takeBatch removes up to BatchSize requests from the queue head.
// Returns nil when the queue is empty.
func (s *Scheduler) takeBatch() []*request {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}

	n := s.cfg.BatchSize
	if n > len(s.queue) {
		n = len(s.queue)
	}
	batch := s.queue[:n]
	s.queue = s.queue[n:]
	return batch
}

// dispatch runs one request to settlement: up to MaxRetries attempts with
// exponential backoff between them. Success stores the response in the
// cache and resolves the future; exhaustion or a non-retryable failure
// rejects it with the last observed cause.
func (s *Scheduler) dispatch(r *request) {
	ctx := llm.WithPurpose(context.Background(), r.purpose)

	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		r.attempts++
		resp, err := s.provider.Generate(ctx, r.req)
		if err == nil {
			s.cache.Store(r.cacheKey, resp.Content)
			r.fut.resolve(resp)
			return
		}
		lastErr = err

		if !retryable(err) || attempt == s.cfg.MaxRetries-1 {
			break
		}

		select {
		case <-time.After(s.backoff(attempt, err)):
		case <-s.stop:
			r.fut.reject(lastErr)
			return
		}
	}

	r.fut.reject(lastErr)
}

// retryable reports whether a failure is worth another attempt. Schema
// noncompliance is a content problem, not a transport problem, and is
// never retried here; the caller decides whether to regenerate.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var invResp *llm.ErrInvalidResponse
	if errors.As(err, &invResp) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Rate limits, provider outages, and unclassified transport errors
	// are all transient.
	return true
}

// backoff computes the delay before the next attempt: InitialDelay doubled
// per retry (1s, 2s, 4s with defaults). A provider-supplied Retry-After
// wins when it is longer.
func (s *Scheduler) backoff(attempt int, err error) time.Duration {
	wait := s.cfg.InitialDelay << uint(attempt)

	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > wait {
		wait = rl.RetryAfter
	}

	return wait
}
