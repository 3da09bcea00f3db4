package session

import "context"

type idKey struct{}

// ContextWithID tags a context with the calling session's id so cross-cutting
// consumers (the global unauthorized hook in particular) can reach the right
// session without threading it through every signature.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// IDFromContext retrieves the session id, if any.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey{}).(string)
	return id, ok && id != ""
}
