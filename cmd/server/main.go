package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"aims/backend/internal/audit"
	auditrepo "aims/backend/internal/audit/repository"
	authhandler "aims/backend/internal/auth/handler"
	authservice "aims/backend/internal/auth/service"
	"aims/backend/internal/config"
	"aims/backend/internal/db"
	"aims/backend/internal/devotp"
	"aims/backend/internal/mailer"
	"aims/backend/internal/security"
	"aims/backend/internal/server"
	"aims/backend/internal/server/middleware"
	studenthandler "aims/backend/internal/student/handler"
	studentrepo "aims/backend/internal/student/repository"
	studentservice "aims/backend/internal/student/service"
	"aims/backend/internal/telemetry/otel"
	userhandler "aims/backend/internal/user/handler"
	userrepo "aims/backend/internal/user/repository"
	userservice "aims/backend/internal/user/service"
	verificationrepo "aims/backend/internal/verification/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "aims-backend", false)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	slog.SetDefault(otelslog.NewLogger("aims-backend", otelslog.WithLoggerProvider(providers.LoggerProvider)))

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("jwt private key: %v", err)
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt public key: %v", err)
	}
	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	users := userrepo.NewPostgresRepository(conn)
	students := studentrepo.NewPostgresRepository(conn)
	auditor := audit.NewLogger(auditrepo.NewPostgresRepository(conn), middleware.GetClientIP)

	var challenges authservice.ChallengeRepo
	switch cfg.VerificationStore {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		challenges = verificationrepo.NewRedisRepository(client)
	case "memory":
		challenges = verificationrepo.NewMemoryRepository()
	default:
		challenges = verificationrepo.NewPostgresRepository(conn)
	}

	var deliverer authservice.Deliverer
	if cfg.SMTPHost != "" {
		smtp, err := mailer.NewSMTP(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			log.Fatalf("mailer: %v", err)
		}
		deliverer = smtp
	} else {
		log.Println("SMTP_HOST not set, logging login codes instead of sending mail")
		deliverer = &mailer.LogDeliverer{Logf: log.Printf}
	}

	otpSvc := authservice.NewOTPService(users, challenges, deliverer, hasher, tokens, auditor, cfg.ChallengeTTL(), cfg.OTPMaxAttempts)

	var devHandler *authhandler.DevOTPHandler
	if cfg.OTPReturnToClient {
		store := devotp.NewMemoryStore()
		otpSvc.SetDevStore(store)
		devHandler = authhandler.NewDevOTP(store)
		log.Println("dev OTP mode enabled: codes retrievable via GET /dev/auth/otp")
	}

	handler := server.New(server.Options{
		Auth:           authhandler.New(otpSvc),
		Users:          userhandler.New(userservice.NewUserService(users, auditor)),
		Students:       studenthandler.New(studentservice.NewStudentService(students, auditor)),
		DevOTP:         devHandler,
		Tokens:         tokens,
		UserResolver:   users,
		DB:             conn,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
