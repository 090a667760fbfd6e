// Package async runs a computation in its own goroutine and lets any number of
// callers wait for the same result.
//
// Async starts fn and returns a *Future immediately. Waiters block with Await,
// or with AwaitContext when they must honour their own deadline; giving up on
// a Future never cancels the computation for the others. A panic inside fn
// completes the Future with ErrPanic.
//
//	f := async.Async(ctx, req, fetch)
//	res, err := f.AwaitContext(r.Context())
package async
