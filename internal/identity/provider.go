package identity

import "context"

// Provider supplies the stable user id that scopes the favorites store.
// The second return is false when no authenticated user is present.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type ctxKey struct{}

// WithUserID returns a context carrying the given user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// ContextProvider resolves the user id placed on the request context by
// the HTTP identity middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// Static always reports the same user, or no user when empty. Used by
// tests and single-user embeddings.
type Static struct {
	UserID string
}

func (s Static) CurrentUserID(context.Context) (string, bool) {
	if s.UserID == "" {
		return "", false
	}
	return s.UserID, true
}
