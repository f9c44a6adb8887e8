package middleware

import (
	"context"
	"log/slog"
	"net/http"

	userdomain "aims/backend/internal/user/domain"
)

// UserResolver looks up the user record behind a validated token identity.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

// ResolveCaller loads the caller's user record for authenticated requests and
// puts it in context. Token claims alone are not trusted for authorization:
// the role and active flag come from the store on every request, so a
// deactivation takes effect before the token expires.
func ResolveCaller(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, ok := GetIdentity(ctx)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByEmail(ctx, id.Email)
			if err != nil {
				slog.ErrorContext(ctx, "resolve caller", "error", err)
				unauthorized(w)
				return
			}
			if u == nil || !u.Active {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(ctx, u)))
		})
	}
}
