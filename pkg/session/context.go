package session

import "context"

type sessionContextKey struct{}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// IsAuthenticated reports whether the request carries a valid session.
// Session presence is the only authentication signal.
func IsAuthenticated(ctx context.Context) bool {
	s, ok := FromContext(ctx)
	return ok && s.IsAuthenticated()
}
