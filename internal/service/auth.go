package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/auth"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/google/uuid"
)

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	Issue(userID, handle string) (string, error)
}

type SignupInput struct {
	Handle      string
	FullName    string
	Email       string
	Password    string
	College     string
	Branch      string
	YearOfStudy string
}

type Session struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type AuthServiceImpl struct {
	log    *slog.Logger
	users  repository.UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

func NewAuthService(log *slog.Logger, users repository.UserRepository, tokens TokenIssuer) *AuthServiceImpl {
	return &AuthServiceImpl{
		log:    log,
		users:  users,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	const op = "internal.service.auth.Signup"
	log := s.log.With(slog.String("op", op), slog.String("handle", in.Handle))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Handle:       in.Handle,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		College:      in.College,
		Branch:       in.Branch,
		YearOfStudy:  in.YearOfStudy,
		CreatedAt:    now,
		LastLogin:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user signed up", slog.String("user_id", user.ID))

	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	const op = "internal.service.auth.Login"
	log := s.log.With(slog.String("op", op))

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		log.Info("login rejected", slog.String("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Handle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.LastLogin = s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, user.LastLogin); err != nil {
		log.Warn("failed to update last login", sl.Err(err))
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return &Session{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
