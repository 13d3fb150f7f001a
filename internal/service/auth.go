package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const minPasswordLen = 6

// OTPSender delivers a verification code to the user.
type OTPSender interface {
	SendOTP(ctx context.Context, email, name, code string) error
}

// ResendLimiter reports whether key may perform another OTP attempt.
type ResendLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type AuthService struct {
	Repo    *repo.GormRepo
	Hasher  hash.Secret
	Issuer  tokens.Issuer
	Sender  OTPSender
	Limiter ResendLimiter
	Events  EventPublisher
	OTPTTL  time.Duration

	// VerifyLimiter caps verification attempts per email; nil disables it.
	VerifyLimiter ResendLimiter

	Now     func() time.Time
	NewCode func() (string, error)
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) code() (string, error) {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return randomCode()
}

// Register creates an unverified account, or refreshes the details of one
// that never completed verification, and sends a fresh OTP.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.RegisterResult, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	switch {
	case name == "":
		return nil, fail(ErrValidation, "name is required")
	case !validEmail(email):
		return nil, fail(ErrValidation, "a valid email is required")
	case len(req.Password) < minPasswordLen:
		return nil, fail(ErrValidation, "password must be at least %d characters", minPasswordLen)
	}

	pwHash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if !isNew && user.IsVerified {
		return nil, fail(ErrValidation, "user with this email already exists")
	}
	if isNew {
		user = &models.User{Email: email, Role: models.RoleUser}
	}

	user.Name = name
	user.PasswordHash = pwHash
	user.Phone = strings.TrimSpace(req.Phone)
	if req.Address != nil {
		user.Address = *req.Address
	}

	code, err := s.setOTP(user)
	if err != nil {
		return nil, err
	}

	if isNew {
		err = s.Repo.CreateUser(ctx, user)
	} else {
		err = s.Repo.SaveUser(ctx, user)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fail(ErrConflict, "user with this email already exists")
		}
		return nil, err
	}

	if isNew {
		publish(ctx, s.Events, TopicUsers, user.ID.String(), map[string]any{
			"type":   "user_registered",
			"userID": user.ID,
			"email":  user.Email,
		})
	}

	return &transport.RegisterResult{Email: user.Email, OTPSent: s.send(ctx, user, code)}, nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, req transport.VerifyOTPRequest) (*transport.AuthResult, error) {
	email := normalizeEmail(req.Email)
	otp := strings.TrimSpace(req.OTP)
	if email == "" || otp == "" {
		return nil, fail(ErrValidation, "email and otp are required")
	}

	if s.VerifyLimiter != nil {
		ok, err := s.VerifyLimiter.Allow(ctx, "otp_verify:"+email)
		if err != nil {
			return nil, fmt.Errorf("verify limiter: %w", err)
		}
		if !ok {
			return nil, fail(ErrRateLimited, "too many verification attempts, try again later")
		}
	}

	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, fail(ErrValidation, "email already verified")
	}
	if !s.Hasher.Check(user.OTPHash, otp) {
		return nil, fail(ErrValidation, "invalid verification code")
	}
	if user.OTPExpiresAt == nil || s.now().After(*user.OTPExpiresAt) {
		return nil, fail(ErrValidation, "verification code has expired")
	}

	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiresAt = nil
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicUsers, user.ID.String(), map[string]any{
		"type":   "user_verified",
		"userID": user.ID,
	})
	return s.authResult(user)
}

func (s *AuthService) ResendOTP(ctx context.Context, req transport.EmailRequest) (*transport.RegisterResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, fail(ErrValidation, "email is required")
	}

	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, fail(ErrValidation, "email already verified")
	}

	if s.Limiter != nil {
		ok, err := s.Limiter.Allow(ctx, "otp_resend:"+email)
		if err != nil {
			return nil, fmt.Errorf("resend limiter: %w", err)
		}
		if !ok {
			return nil, fail(ErrRateLimited, "too many verification codes requested, try again later")
		}
	}

	code, err := s.setOTP(user)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return &transport.RegisterResult{Email: user.Email, OTPSent: s.send(ctx, user, code)}, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fail(ErrValidation, "email and password are required")
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	if !s.Hasher.Check(user.PasswordHash, req.Password) {
		return nil, fail(ErrUnauthorized, "invalid email or password")
	}
	if !user.IsVerified {
		return nil, fail(ErrForbidden, "please verify your email first")
	}
	return s.authResult(user)
}

func (s *AuthService) Profile(ctx context.Context, p *domain.Principal) (*models.User, error) {
	if p == nil {
		return nil, fail(ErrUnauthorized, "authentication required")
	}
	user, err := s.Repo.GetUserByID(ctx, p.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "user not found")
	}
	return user, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, p *domain.Principal, req transport.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Profile(ctx, p)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fail(ErrValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "user not found")
	}
	return user, err
}

// setOTP stores a hashed fresh code on the user and returns the plain code.
func (s *AuthService) setOTP(user *models.User) (string, error) {
	code, err := s.code()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	h, err := s.Hasher.Hash(code)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	exp := s.now().Add(s.OTPTTL)
	user.OTPHash = h
	user.OTPExpiresAt = &exp
	return code, nil
}

// send reports whether the code went out. A delivery failure leaves the
// account in place so the user can ask for a resend.
func (s *AuthService) send(ctx context.Context, user *models.User, code string) bool {
	if s.Sender == nil {
		return false
	}
	if err := s.Sender.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		logging.FromContext(ctx).Warn("otp_send_failed", "user_id", user.ID, "error", err)
		return false
	}
	return true
}

func (s *AuthService) authResult(user *models.User) (*transport.AuthResult, error) {
	token, exp, err := s.Issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &transport.AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
