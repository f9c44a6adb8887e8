package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"aims/backend/internal/security"
	userdomain "aims/backend/internal/user/domain"
)

type contextKey struct{ name string }

var (
	identityKey = contextKey{"identity"}
	callerKey   = contextKey{"caller"}
	clientIPKey = contextKey{"client_ip"}
)

// WithIdentity returns a context carrying the validated caller identity.
func WithIdentity(ctx context.Context, id security.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the caller identity from ctx and true if set.
func GetIdentity(ctx context.Context) (security.Identity, bool) {
	v, ok := ctx.Value(identityKey).(security.Identity)
	return v, ok
}

// WithCaller returns a context carrying the resolved caller record.
func WithCaller(ctx context.Context, u *userdomain.User) context.Context {
	return context.WithValue(ctx, callerKey, u)
}

// GetCaller returns the resolved caller from ctx, or nil when the request is
// unauthenticated or the identity no longer resolves.
func GetCaller(ctx context.Context) *userdomain.User {
	v, _ := ctx.Value(callerKey).(*userdomain.User)
	return v
}

// WithClientIP returns a context carrying the request's client IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP returns the client IP from ctx, or "" if unset.
func GetClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// ClientIP extracts the client address from the request, preferring
// X-Forwarded-For when a proxy set it.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
