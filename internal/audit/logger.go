// Package audit records auth and admin events for later review.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aims/backend/internal/audit/domain"
	auditrepo "aims/backend/internal/audit/repository"
)

// Event actions recorded by the auth and admin flows.
const (
	ActionOTPSent         = "auth.otp_sent"
	ActionLoginSuccess    = "auth.login_success"
	ActionLoginFailure    = "auth.login_failure"
	ActionUserCreated     = "user.created"
	ActionUserDeactivated = "user.deactivated"
	ActionStudentCreated  = "student.created"
)

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, resource, metadata string)
}

// Logger implements AuditLogger using the audit repository and an optional IP
// extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
}

// NewLogger returns an AuditLogger that persists to repo and uses ipExtractor
// for the client IP. ipExtractor may be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor}
}

// LogEvent writes one audit log entry. Best-effort: errors are logged and not
// returned.
func (l *Logger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "audit: failed to log event",
			"action", action, "resource", resource, "error", err)
	}
}

// Nop is an AuditLogger that records nothing. Used in tests and when auditing
// is disabled.
type Nop struct{}

func (Nop) LogEvent(context.Context, string, string, string, string) {}
