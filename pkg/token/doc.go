// Package token provides single-flight acquisition of the remote commerce API
// bearer token.
//
// Service.Token returns the cached token when it is still fresh. Otherwise the
// first caller starts a fetch and every concurrent caller awaits the same
// async.Future, so a burst of requests triggers exactly one login call. The
// in-flight marker is cleared when the fetch finishes, whether it succeeded or
// not; a failure is returned to every waiter and the next call retries.
//
//	tokens := token.New(authClient.Login,
//	    token.WithTTL(30*time.Minute),
//	    token.WithCache(vault),
//	)
//	bearer, err := tokens.Token(ctx)
//
// Invalidate drops the cached token, typically after a 401 from the API.
package token
