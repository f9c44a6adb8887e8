// Package service implements the email-OTP login protocol: a two-step
// challenge/response that turns a delivered one-time code into a signed
// bearer credential.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"aims/backend/internal/audit"
	"aims/backend/internal/devotp"
	"aims/backend/internal/security"
	userdomain "aims/backend/internal/user/domain"
	"aims/backend/internal/verification"
	verificationdomain "aims/backend/internal/verification/domain"
)

// Sentinel errors for the OTP login protocol; the handler maps them to HTTP
// status codes. None is retryable without new input.
var (
	// ErrUnknownSubject is returned when no active identity exists for the
	// email. Login never self-registers.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrNoPendingChallenge covers both "never requested" and "already
	// consumed" identically, so a caller cannot probe challenge state.
	ErrNoPendingChallenge = errors.New("no pending challenge")
	// ErrChallengeExpired is returned when the challenge's expiry elapsed.
	ErrChallengeExpired = errors.New("challenge expired")
	// ErrInvalidChallenge is returned on an OTP mismatch. The challenge
	// stays usable for further attempts until it expires or hits the cap.
	ErrInvalidChallenge = errors.New("invalid challenge")
	// ErrTooManyAttempts is returned once the failed-attempt cap is hit;
	// the challenge is consumed and a fresh send is required.
	ErrTooManyAttempts = errors.New("too many failed attempts")
	// ErrDeliveryFailed is returned when the out-of-band channel rejects
	// the code. The stored challenge is kept; a resend replaces it.
	ErrDeliveryFailed = errors.New("otp delivery failed")
)

// DefaultMaxAttempts caps failed verifications per challenge. Six digits give
// only 10^6 codes, so unlimited retries inside the validity window would be a
// practical brute-force target.
const DefaultMaxAttempts = 5

// Credential is the signed bearer token issued after successful verification,
// together with the role it asserts.
type Credential struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

// UserRepo is the minimal user repository needed by the OTP service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

// ChallengeRepo is the minimal challenge repository needed by the OTP service.
type ChallengeRepo interface {
	Put(ctx context.Context, c *verificationdomain.PendingChallenge) error
	Get(ctx context.Context, email string) (*verificationdomain.PendingChallenge, error)
	Delete(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, email string) error
}

// Deliverer transmits the plaintext code out-of-band (email). The service
// never returns the plaintext to its caller.
type Deliverer interface {
	Deliver(ctx context.Context, email, code string) error
}

// OTPService orchestrates SendChallenge and VerifyChallenge against the
// challenge store, the hasher, and the user lookup.
type OTPService struct {
	users        UserRepo
	challenges   ChallengeRepo
	deliverer    Deliverer
	hasher       *security.Hasher
	tokens       *security.TokenProvider
	auditor      audit.AuditLogger
	challengeTTL time.Duration
	maxAttempts  int
	devStore     devotp.Store
	nowFn        func() time.Time
}

// NewOTPService returns an OTPService with the given dependencies.
// challengeTTL <= 0 selects the 10-minute default; maxAttempts <= 0 selects
// DefaultMaxAttempts.
func NewOTPService(
	users UserRepo,
	challenges ChallengeRepo,
	deliverer Deliverer,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	auditor audit.AuditLogger,
	challengeTTL time.Duration,
	maxAttempts int,
) *OTPService {
	if challengeTTL <= 0 {
		challengeTTL = 10 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &OTPService{
		users:        users,
		challenges:   challenges,
		deliverer:    deliverer,
		hasher:       hasher,
		tokens:       tokens,
		auditor:      auditor,
		challengeTTL: challengeTTL,
		maxAttempts:  maxAttempts,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}

// SetDevStore enables dev OTP capture: every generated code is also placed in
// store for retrieval via the dev endpoint. Must not be called in production;
// config enforces that.
func (s *OTPService) SetDevStore(store devotp.Store) {
	s.devStore = store
}

// SendChallenge generates a fresh 6-digit code for the identity behind email,
// stores its bcrypt hash with an expiry, and delivers the plaintext
// out-of-band. Any previously pending challenge for the email is replaced.
func (s *OTPService) SendChallenge(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return ErrUnknownSubject
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || !u.Active {
		return ErrUnknownSubject
	}

	code, err := verification.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	hash, err := s.hasher.Hash([]byte(code))
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	now := s.nowFn()
	challenge := &verificationdomain.PendingChallenge{
		Email:     email,
		OTPHash:   hash,
		ExpiresAt: now.Add(s.challengeTTL),
		CreatedAt: now,
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return err
	}

	if s.devStore != nil {
		s.devStore.Put(ctx, email, code, challenge.ExpiresAt)
	}

	if err := s.deliverer.Deliver(ctx, email, code); err != nil {
		// The challenge stays stored: the next send replaces it, and the
		// operator can see the failure in the audit trail.
		s.auditor.LogEvent(ctx, u.ID, audit.ActionLoginFailure, email, "otp delivery failed")
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}

	s.auditor.LogEvent(ctx, u.ID, audit.ActionOTPSent, email, "")
	return nil
}

// VerifyChallenge checks the submitted code against the pending challenge for
// email. On success the challenge is consumed and a Credential embedding the
// identity's role is issued.
func (s *OTPService) VerifyChallenge(ctx context.Context, email, otp string) (*Credential, error) {
	email = normalizeEmail(email)

	c, err := s.challenges.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		s.auditor.LogEvent(ctx, "", audit.ActionLoginFailure, email, "no pending challenge")
		return nil, ErrNoPendingChallenge
	}

	now := s.nowFn()
	if c.Expired(now) {
		s.auditor.LogEvent(ctx, "", audit.ActionLoginFailure, email, "challenge expired")
		return nil, ErrChallengeExpired
	}

	if c.Attempts >= s.maxAttempts {
		_ = s.challenges.Delete(ctx, email)
		s.auditor.LogEvent(ctx, "", audit.ActionLoginFailure, email, "attempt cap reached")
		return nil, ErrTooManyAttempts
	}

	if err := s.hasher.Compare(c.OTPHash, []byte(otp)); err != nil {
		// A wrong code does not consume the challenge; retries remain
		// possible until expiry or the attempt cap.
		_ = s.challenges.IncrementAttempts(ctx, email)
		s.auditor.LogEvent(ctx, "", audit.ActionLoginFailure, email, "otp mismatch")
		return nil, ErrInvalidChallenge
	}

	// One-time use: the record goes away before the credential is minted, so
	// a second verify with the same code lands on ErrNoPendingChallenge.
	if err := s.challenges.Delete(ctx, email); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, ErrUnknownSubject
	}

	token, expiresAt, err := s.tokens.IssueAccess(security.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.auditor.LogEvent(ctx, u.ID, audit.ActionLoginSuccess, email, "")
	return &Credential{Token: token, Role: string(u.Role), ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
