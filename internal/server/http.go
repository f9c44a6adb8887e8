// Package server assembles the HTTP surface: routes, middleware chain, CORS,
// and request tracing.
package server

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	authhandler "aims/backend/internal/auth/handler"
	"aims/backend/internal/security"
	"aims/backend/internal/server/middleware"
	"aims/backend/internal/server/response"
	studenthandler "aims/backend/internal/student/handler"
	userhandler "aims/backend/internal/user/handler"
)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options carries the dependencies for the HTTP handler tree.
type Options struct {
	Auth     *authhandler.Handler
	Users    *userhandler.Handler
	Students *studenthandler.Handler
	// DevOTP is nil unless dev OTP mode is enabled.
	DevOTP *authhandler.DevOTPHandler

	Tokens       *security.TokenProvider
	UserResolver middleware.UserResolver
	DB           Pinger

	AllowedOrigins []string
}

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/api/auth/login/send-otp":   true,
	"/api/auth/login/verify-otp": true,
	"/health":                    true,
	"/dev/auth/otp":              true,
}

// New builds the HTTP handler: httprouter routes wrapped by caller resolution,
// bearer auth, CORS, and otelhttp tracing (outermost).
func New(opts Options) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusNotFound, "endpoint not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Handler(http.MethodPost, "/api/auth/login/send-otp", http.HandlerFunc(opts.Auth.SendOTP))
	router.Handler(http.MethodPost, "/api/auth/login/verify-otp", http.HandlerFunc(opts.Auth.VerifyOTP))

	router.Handler(http.MethodPost, "/api/admin/users", http.HandlerFunc(opts.Users.Create))
	router.Handler(http.MethodGet, "/api/admin/users", http.HandlerFunc(opts.Users.List))
	router.Handler(http.MethodDelete, "/api/admin/users/:id", http.HandlerFunc(opts.Users.Deactivate))

	router.Handler(http.MethodPost, "/api/admin/students", http.HandlerFunc(opts.Students.Create))
	router.Handler(http.MethodGet, "/api/admin/students", http.HandlerFunc(opts.Students.List))

	router.Handler(http.MethodGet, "/health", healthHandler(opts.DB))

	if opts.DevOTP != nil {
		router.Handler(http.MethodGet, "/dev/auth/otp", http.HandlerFunc(opts.DevOTP.Get))
	}

	var h http.Handler = router
	h = middleware.ResolveCaller(opts.UserResolver)(h)
	h = middleware.Auth(opts.Tokens, publicPaths)(h)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	h = c.Handler(h)

	return otelhttp.NewHandler(h, "http.server")
}

func healthHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "db": "ok"}
		code := http.StatusOK
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				status["status"] = "degraded"
				status["db"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}
		response.WriteJSON(w, code, status)
	})
}
