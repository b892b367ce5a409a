package concert

import "context"

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// WithPrincipal installs the resolved principal in the given context. The
// slot is write-once per request: if a principal is already present, the
// context is returned unchanged so an earlier resolution is never
// overwritten.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	if principal == "" {
		return ctx
	}
	if _, ok := PrincipalFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, principalCtxKey, principal)
}

// PrincipalFromContext finds the resolved principal, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(principalCtxKey).(string)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}
