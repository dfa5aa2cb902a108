// Package auth implements the passwordless login core: OTP issuance gated by
// the college email domain, and OTP verification that mints the first token
// pair.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/infrastructure/directory"
	jwtinfra "github.com/canopy-api/internal/infrastructure/jwt"
	"github.com/canopy-api/internal/pkg/otp"
)

// otpTTL is the validity window of an issued code.
const otpTTL = 5 * time.Minute

// UserStore is the identity-store surface this service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertByEmail(ctx context.Context, u *domain.User) (*domain.User, error)
	ClearOTP(ctx context.Context, userID, expectedOTP string) error
}

// CollegeStore mirrors directory entries into the identity store.
type CollegeStore interface {
	Upsert(ctx context.Context, name, emailDomain string) (*domain.College, error)
}

// Directory resolves college names against the static CSV dataset.
type Directory interface {
	Lookup(name string) (directory.Entry, bool)
}

// Mailer delivers the OTP. A nil Mailer behaves like missing credentials.
type Mailer interface {
	Configured() bool
	SendEmail(to, subject, body string) error
}

// TokenIssuer mints the initial access/refresh pair. A nil issuer means the
// signing secret is unavailable.
type TokenIssuer interface {
	IssuePair(userID, name, collegeName string) (access, refresh string, err error)
}

// VerifyResult is the outcome of a successful OTP verification.
type VerifyResult struct {
	User         domain.PublicUser
	AccessToken  string
	RefreshToken string
}

type Service interface {
	// RequestOTP issues a fresh code for the given identity. dev is true when
	// delivery was bypassed in relaxed mode and the code was only logged.
	RequestOTP(ctx context.Context, req domain.SendOTPRequest) (dev bool, err error)
	// VerifyOTP validates a submitted code, flips the identity to verified and
	// mints the first token pair.
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyResult, error)
}

// ServiceDeps wires the service's collaborators.
type ServiceDeps struct {
	Users    UserStore
	Colleges CollegeStore
	Dir      Directory
	Mailer   Mailer
	Tokens   TokenIssuer
	// Strict disables the relaxed delivery fallback: a failed or unconfigured
	// mailer becomes a reported error instead of a logged code.
	Strict bool
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) RequestOTP(ctx context.Context, req domain.SendOTPRequest) (bool, error) {
	entry, ok := s.deps.Dir.Lookup(req.CollegeName)
	if !ok {
		return false, fmt.Errorf("college %q: %w", req.CollegeName, domain.ErrCollegeNotFound)
	}

	// A college with no registered domain is open enrollment.
	if entry.Domain != "" && !emailOnDomain(req.Email, entry.Domain) {
		return false, domain.NewDomainMismatch(entry.Domain)
	}

	college, err := s.deps.Colleges.Upsert(ctx, entry.Name, entry.Domain)
	if err != nil {
		return false, fmt.Errorf("upsert college: %v: %w", err, domain.ErrCollegeStore)
	}

	code, err := otp.Generate()
	if err != nil {
		return false, fmt.Errorf("%v: %w", err, domain.ErrServer)
	}
	expiry := time.Now().Add(otpTTL).Unix()

	// A fresh issuance always overwrites any pending code for this email and
	// resets the verified flag. Nothing here is rolled back on later failure:
	// the college row and the pending OTP may outlive a failed email send, and
	// retrying issuance recovers cleanly.
	user := &domain.User{
		Email:       req.Email,
		Name:        req.Name,
		Role:        "student",
		CollegeID:   college.CollegeID,
		CollegeName: college.Name,
		OTP:         &code,
		OTPExpiry:   &expiry,
		Verified:    false,
	}
	if _, err := s.deps.Users.UpsertByEmail(ctx, user); err != nil {
		return false, fmt.Errorf("upsert user: %v: %w", err, domain.ErrUserStore)
	}

	if s.deps.Mailer == nil || !s.deps.Mailer.Configured() {
		return s.degrade(req.Email, code, domain.ErrEmailNotConfigured)
	}
	subject := "Your Canopy OTP"
	body := fmt.Sprintf("Hello %s,\n\nYour OTP is: %s. It expires in 5 minutes.\n\nCollege: %s", req.Name, code, college.Name)
	if err := s.deps.Mailer.SendEmail(req.Email, subject, body); err != nil {
		slog.Warn("otp email delivery failed", "email", req.Email, "err", err)
		return s.degrade(req.Email, code, domain.ErrEmailSendFailed)
	}
	return false, nil
}

// degrade applies the relaxed/strict branching for delivery failures. In
// relaxed mode the code stays observable through the log so the flow remains
// testable without a live mail transport.
func (s *service) degrade(email, code string, strictErr error) (bool, error) {
	if s.deps.Strict {
		return false, strictErr
	}
	slog.Info("email delivery unavailable, otp issued without delivery", "email", email, "otp", code)
	return true, nil
}

func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyResult, error) {
	u, err := s.deps.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no identity for email: %w", domain.ErrNoOTP)
		}
		return nil, fmt.Errorf("load user: %v: %w", err, domain.ErrServer)
	}
	if u.OTP == nil || u.OTPExpiry == nil {
		return nil, fmt.Errorf("no pending code: %w", domain.ErrNoOTP)
	}

	// Equality is checked before expiry so a stale-but-correct code reports
	// otp_expired rather than otp_invalid.
	if *u.OTP != req.OTP {
		return nil, domain.ErrOTPInvalid
	}
	if time.Now().Unix() > *u.OTPExpiry {
		return nil, domain.ErrOTPExpired
	}

	// Clear-if-unchanged: a concurrent re-issuance that replaced the code
	// between read and clear surfaces as no_otp instead of wiping the newer code.
	if err := s.deps.Users.ClearOTP(ctx, u.UserID, req.OTP); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("code superseded: %w", domain.ErrNoOTP)
		}
		return nil, fmt.Errorf("clear otp: %v: %w", err, domain.ErrServer)
	}

	if s.deps.Tokens == nil {
		return nil, domain.ErrJWTSecretMissing
	}
	access, refresh, err := s.deps.Tokens.IssuePair(u.UserID, u.Name, u.CollegeName)
	if err != nil {
		return nil, fmt.Errorf("issue token pair: %v: %w", err, domain.ErrServer)
	}

	return &VerifyResult{
		User:         u.Public(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func emailOnDomain(email, emailDomain string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(email[at+1:], emailDomain)
}

// compile-time check that the real provider satisfies the issuer surface.
var _ TokenIssuer = (*jwtinfra.Provider)(nil)
