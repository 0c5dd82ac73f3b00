// Package reqlog carries the outcome of a request from the handler that
// produced it to the middleware that logs it.
package reqlog

import (
	"context"
	"sync"
)

// Entry holds what a handler reports about a failed request. Handlers may run
// on a different goroutine than the logger, so access is locked.
type Entry struct {
	mu   sync.Mutex
	kind string
	err  error
}

type ctxKey struct{}

// NewContext attaches a fresh Entry to ctx
func NewContext(ctx context.Context) (context.Context, *Entry) {
	e := &Entry{}
	return context.WithValue(ctx, ctxKey{}, e), e
}

// SetError records the error category and cause on the request's Entry.
// It is a no-op when ctx carries none.
func SetError(ctx context.Context, kind string, err error) {
	e, ok := ctx.Value(ctxKey{}).(*Entry)
	if !ok {
		return
	}
	e.mu.Lock()
	e.kind, e.err = kind, err
	e.mu.Unlock()
}

// Error returns the recorded category and cause, if any
func (e *Entry) Error() (kind string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kind, e.err
}
