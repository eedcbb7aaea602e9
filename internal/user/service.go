package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	UpdateProfile(ctx context.Context, u *User) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	// UpdatePassword stores the new hash and clears any reset token.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	mailer   Mailer
	resetURL string
	resetTTL time.Duration
	now      func() time.Time
}

type Config struct {
	// FrontendURL is the base of the password reset link.
	FrontendURL string
	ResetTTL    time.Duration
}

func NewService(repo Repository, hasher PasswordHasher, mailer Mailer, cfg Config) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		mailer:   mailer,
		resetURL: strings.TrimRight(cfg.FrontendURL, "/") + "/reset-password",
		resetTTL: cfg.ResetTTL,
		now:      time.Now,
	}
}

type SignupParams struct {
	FullName string
	Email    string
	Password string
}

func (s *Service) Signup(ctx context.Context, params SignupParams) (*User, error) {
	if params.FullName == "" || params.Email == "" || params.Password == "" {
		return nil, fmt.Errorf("%w: full name, email, and password are required", ErrInvalidInput)
	}

	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns ErrNotFound for an unknown email and
// ErrInvalidCredentials for a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// ProfileParams leaves nil fields unchanged.
type ProfileParams struct {
	FullName  *string
	Email     *string
	AvatarURL *string
}

func (p ProfileParams) empty() bool {
	return p.FullName == nil && p.Email == nil && p.AvatarURL == nil
}

// UpdateProfile reports changed=false when params carry no fields.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params ProfileParams) (u *User, changed bool, err error) {
	u, err = s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if params.empty() {
		return u, false, nil
	}

	if params.Email != nil && *params.Email != "" && *params.Email != u.Email {
		_, err := s.repo.GetUserByEmail(ctx, *params.Email)
		if err == nil {
			return nil, false, ErrEmailTaken
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	if params.FullName != nil {
		u.FullName = *params.FullName
	}

	if params.Email != nil {
		u.Email = *params.Email
	}

	if params.AvatarURL != nil {
		u.AvatarURL = params.AvatarURL
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, false, err
	}

	return u, true, nil
}

// RequestPasswordReset stores a fresh single-use token and mails the reset link.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetToken(ctx, u.ID, token, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	link := s.resetURL + "?token=" + url.QueryEscape(token)
	body := fmt.Sprintf(
		"<h2>Reset Your Password</h2>\n<p>Click below to reset your password:</p>\n"+
			"<a href=\"%s\">Reset Password</a>\n<p>This link expires in %s.</p>\n",
		link, s.resetTTL)

	if err := s.mailer.Send(ctx, u.Email, "Reset Your Password - BudgetEase", body); err != nil {
		return fmt.Errorf("sending reset email: %w", err)
	}

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: token and new password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetUserByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}

		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, u.ID, hash)
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}

	return hex.EncodeToString(b), nil
}
