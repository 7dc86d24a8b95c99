package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/pkg/jwt"
	"brightline/internal/repository"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
	verifyTokenTTL         = 24 * time.Hour
	resetTokenTTL          = 10 * time.Minute
)

// Service contains all business logic for authentication.
type Service struct {
	users       UserRepository
	tokens      TokenIssuer
	notifier    Notifier
	frontendURL string
	now         func() time.Time
}

func NewService(users UserRepository, tokens TokenIssuer, notifier Notifier, frontendURL string) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		notifier:    notifier,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	rawVerify, err := s.issueVerification(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateWelcome, user.Email,
		"Welcome to Brightline Electric", map[string]any{"firstName": user.FirstName}))
	s.sendVerification(ctx, user, rawVerify)

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	now := s.now()
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		user.FailedLoginAttempts++
		locked := user.FailedLoginAttempts >= maxFailedLoginAttempts
		if locked {
			until := now.Add(lockoutDuration)
			user.LockedUntil = &until
			user.FailedLoginAttempts = 0
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("record failed login: %w", err)
		}
		if locked {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims)
}

// ForgotPassword never reveals whether the email is registered.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw, hash, err := newToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(resetTokenTTL)
	user.PasswordResetTokenHash = hash
	user.PasswordResetExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplatePasswordReset, user.Email,
		"Password reset request", map[string]any{
			"firstName": user.FirstName,
			"resetUrl":  s.frontendURL + "/reset-password/" + raw,
			"expiresIn": "10 minutes",
		}))
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, rawToken, password string) (*AuthResponse, error) {
	user, err := s.users.GetByResetToken(ctx, hashToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.PasswordResetTokenHash = ""
	user.PasswordResetExpires = nil
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplatePasswordChanged, user.Email,
		"Your password was changed", map[string]any{"firstName": user.FirstName}))
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *Service) VerifyEmail(ctx context.Context, rawToken string) (*domain.User, error) {
	user, err := s.users.GetByVerificationToken(ctx, hashToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup verification token: %w", err)
	}

	user.IsEmailVerified = true
	user.EmailVerificationTokenHash = ""
	user.EmailVerificationExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	return user, nil
}

func (s *Service) ResendVerification(ctx context.Context, userID int64) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return ErrAlreadyVerified
	}

	raw, err := s.issueVerification(user)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	s.sendVerification(ctx, user, raw)
	return nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplatePasswordChanged, user.Email,
		"Your password was changed", map[string]any{"firstName": user.FirstName}))
	return nil
}

func (s *Service) issueVerification(user *domain.User) (string, error) {
	raw, hash, err := newToken()
	if err != nil {
		return "", err
	}
	expires := s.now().Add(verifyTokenTTL)
	user.EmailVerificationTokenHash = hash
	user.EmailVerificationExpires = &expires
	return raw, nil
}

func (s *Service) sendVerification(ctx context.Context, user *domain.User, raw string) {
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateVerifyEmail, user.Email,
		"Verify your email address", map[string]any{
			"firstName": user.FirstName,
			"verifyUrl": s.frontendURL + "/verify-email/" + raw,
		}))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// newToken returns a random hex token and the sha256 hash that gets stored.
func newToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
