package inference

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
)

func testConfig() Config {
	return Config{
		BatchSize:    50,
		BatchWait:    time.Millisecond,
		MaxRetries:   3,
		InitialDelay: 5 * time.Millisecond,
		CacheTTL:     time.Hour,
	}
}

func genRequest(content string) llm.Request {
	return llm.Request{
		System:    "You are an emergency medicine educator.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: content}},
		MaxTokens: 256,
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestScheduler_ResolvesSuccess(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	fut := s.Enqueue(context.Background(), genRequest("case one"))
	resp, err := fut.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("Content = %s, want {\"ok\":true}", resp.Content)
	}
}

func TestScheduler_CacheHitSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"n":1}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	req := genRequest("same prompt")

	resp1, err := s.Enqueue(context.Background(), req).Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("first enqueue: %v", err)
	}

	// Second enqueue of the identical prompt must resolve from the cache
	// without reaching the provider (whose queue is now empty and would
	// return ErrProviderUnavailable).
	resp2, err := s.Enqueue(context.Background(), req).Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}

	if string(resp1.Content) != string(resp2.Content) {
		t.Fatalf("cached content %s differs from original %s", resp2.Content, resp1.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
}

func TestScheduler_RetriesThenRejects(t *testing.T) {
	cause := &llm.ErrProviderUnavailable{Err: errors.New("boom")}
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: cause},
		llm.MockResponse{Err: cause},
		llm.MockResponse{Err: cause},
		// A fourth canned success must never be reached.
		llm.MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	_, err := s.Enqueue(context.Background(), genRequest("flaky")).Wait(waitCtx(t))
	if err == nil {
		t.Fatal("expected rejection after exhausted retries")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected last cause ErrProviderUnavailable, got %T (%v)", err, err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("CallCount = %d, want 3 (MaxRetries)", mock.CallCount())
	}
}

func TestScheduler_RetryRecovers(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	resp, err := s.Enqueue(context.Background(), genRequest("transient")).Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("Content = %s, want {\"ok\":true}", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("CallCount = %d, want 2", mock.CallCount())
	}
}

func TestScheduler_BackoffDelays(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	cfg := testConfig()
	cfg.InitialDelay = 20 * time.Millisecond
	s := NewScheduler(mock, NewCache(time.Hour), cfg)
	defer s.Close()

	start := time.Now()
	_, err := s.Enqueue(context.Background(), genRequest("slow fail")).Wait(waitCtx(t))
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected rejection")
	}
	// Two backoff pauses: 20ms then 40ms.
	if elapsed < 60*time.Millisecond {
		t.Fatalf("elapsed = %v, want >= 60ms (InitialDelay×1 + InitialDelay×2)", elapsed)
	}
}

func TestScheduler_InvalidResponseNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("schema violation")}},
		llm.MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	_, err := s.Enqueue(context.Background(), genRequest("bad content")).Wait(waitCtx(t))
	if err == nil {
		t.Fatal("expected rejection")
	}
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1 (content failures are not retried)", mock.CallCount())
	}
}

// gateProvider blocks every Generate call until released, recording the
// order in which requests arrive.
type gateProvider struct {
	mu      sync.Mutex
	arrived []string
	release chan struct{}
}

func newGateProvider() *gateProvider {
	return &gateProvider{release: make(chan struct{})}
}

func (g *gateProvider) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	g.mu.Lock()
	g.arrived = append(g.arrived, req.Messages[0].Content)
	g.mu.Unlock()
	<-g.release
	return &llm.Response{Content: json.RawMessage(`{}`), Model: "gate", StopReason: "end"}, nil
}

func (g *gateProvider) ModelID() string { return "gate" }

func (g *gateProvider) arrivedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.arrived)
}

func TestScheduler_BatchBoundary(t *testing.T) {
	gate := newGateProvider()
	cfg := testConfig()
	cfg.BatchSize = 2
	s := NewScheduler(gate, NewCache(time.Hour), cfg)
	defer s.Close()

	prompts := []string{"a", "b", "c", "d"}
	futs := make([]*Future, len(prompts))
	for i, p := range prompts {
		futs[i] = s.Enqueue(context.Background(), genRequest(p))
	}

	// The first batch (up to 2 requests) dispatches; later batches must
	// wait for it to settle.
	deadline := time.Now().Add(2 * time.Second)
	for gate.arrivedCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := gate.arrivedCount(); n != 2 {
		t.Fatalf("dispatched = %d before release, want 2 (batch boundary)", n)
	}

	close(gate.release)
	for _, f := range futs {
		if _, err := f.Wait(waitCtx(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := gate.arrivedCount(); n != 4 {
		t.Fatalf("dispatched = %d total, want 4", n)
	}

	// Batch FIFO: a and b arrive (in either order) before c and d.
	first := map[string]bool{gate.arrived[0]: true, gate.arrived[1]: true}
	if !first["a"] || !first["b"] {
		t.Fatalf("first batch = %v, want {a, b}", gate.arrived[:2])
	}
}

func TestScheduler_AbandonedWaitStillCompletes(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"late":true}`)},
	)
	s := NewScheduler(mock, NewCache(time.Hour), testConfig())
	defer s.Close()

	fut := s.Enqueue(context.Background(), genRequest("abandoned"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fut.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The request still runs to completion; a later Wait sees the result.
	resp, err := fut.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"late":true}` {
		t.Fatalf("Content = %s, want {\"late\":true}", resp.Content)
	}
}

func TestScheduler_CloseRejectsQueued(t *testing.T) {
	gate := newGateProvider()
	cfg := testConfig()
	cfg.BatchSize = 1
	s := NewScheduler(gate, NewCache(time.Hour), cfg)

	fut1 := s.Enqueue(context.Background(), genRequest("in flight"))
	fut2 := s.Enqueue(context.Background(), genRequest("still queued"))

	deadline := time.Now().Add(2 * time.Second)
	for gate.arrivedCount() < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(gate.release)
	}()
	s.Close()

	if _, err := fut1.Wait(waitCtx(t)); err != nil {
		t.Fatalf("in-flight request should settle normally, got %v", err)
	}
	if _, err := fut2.Wait(waitCtx(t)); !errors.Is(err, ErrSchedulerClosed) {
		t.Fatalf("queued request should reject with ErrSchedulerClosed, got %v", err)
	}

	fut3 := s.Enqueue(context.Background(), genRequest("after close"))
	if _, err := fut3.Wait(waitCtx(t)); !errors.Is(err, ErrSchedulerClosed) {
		t.Fatalf("post-close enqueue should reject, got %v", err)
	}
}
