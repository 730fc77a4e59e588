package account

import "context"

// Session identifies the authenticated user an operation runs as.
type Session struct {
	UserID string
}

type sessionKey struct{}

// WithSession returns a context carrying s. Store operations read the
// session from their context; they never trust a caller-supplied user id.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom extracts the session from ctx.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}
