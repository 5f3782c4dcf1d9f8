package inference

import (
	"context"

	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
)

// Future is the caller's handle to an enqueued request. It settles exactly
// once, either with a response or an error. Callers block only on their own
// future, never on other requests.
type Future struct {
	done chan struct{}
	resp *llm.Response
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolvedFuture(resp *llm.Response) *Future {
	f := newFuture()
	f.resolve(resp)
	return f
}

func (f *Future) resolve(resp *llm.Response) {
	f.resp = resp
	close(f.done)
}

func (f *Future) reject(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel closed when the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done, whichever comes
// first. A ctx expiry abandons the result; the underlying request still
// runs to completion and its resolution is discarded.
func (f *Future) Wait(ctx context.Context) (*llm.Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.resp, f.err
	}
}
