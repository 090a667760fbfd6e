package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation shared by any
// number of waiters.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the computation to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes
// first. Giving up does not cancel the computation; other waiters still get
// its result.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the computation is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in a new goroutine and returns its Future.
// A context that is already canceled short-circuits without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		defer func() {
			if r := recover(); r != nil {
				f.once.Do(func() { f.err = fmt.Errorf("%w: %v", ErrPanic, r) })
			}
		}()

		res, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Resolved returns an already completed Future.
func Resolved[U any](v U, err error) *Future[U] {
	f := &Future[U]{result: v, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}
