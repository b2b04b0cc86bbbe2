package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
)

// CalendarAuthorizer runs the OAuth consent round trip.
type CalendarAuthorizer interface {
	Configured() bool
	AuthURL(state string) string
	Exchange(ctx context.Context, userID, code string) (*domain.CalendarGrant, error)
}

// StateSigner binds an OAuth round trip to the user that started it.
type StateSigner interface {
	IssueState(userID string, ttl time.Duration) (string, error)
	VerifyState(state string) (string, error)
}

type CalendarStatus struct {
	Connected bool
	Message   string
}

type CalendarService interface {
	ConnectURL(ctx context.Context, userID string) (string, error)
	Callback(ctx context.Context, code, state string) error
	Status(ctx context.Context, userID string) (*CalendarStatus, error)
}

type CalendarServiceImpl struct {
	log        *slog.Logger
	authorizer CalendarAuthorizer
	states     StateSigner
	grants     repository.CalendarGrantRepository
	stateTTL   time.Duration
}

func NewCalendarService(
	log *slog.Logger,
	authorizer CalendarAuthorizer,
	states StateSigner,
	grants repository.CalendarGrantRepository,
	stateTTL time.Duration,
) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		log:        log,
		authorizer: authorizer,
		states:     states,
		grants:     grants,
		stateTTL:   stateTTL,
	}
}

func (s *CalendarServiceImpl) ConnectURL(_ context.Context, userID string) (string, error) {
	const op = "internal.service.calendar.ConnectURL"

	if !s.authorizer.Configured() {
		return "", fmt.Errorf("%s: %w: google client credentials are not configured", op, apperrors.ErrCalendarNotAuthorized)
	}

	state, err := s.states.IssueState(userID, s.stateTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.authorizer.AuthURL(state), nil
}

func (s *CalendarServiceImpl) Callback(ctx context.Context, code, state string) error {
	const op = "internal.service.calendar.Callback"

	if code == "" {
		return validationError(op, "authorization code is required")
	}

	userID, err := s.states.VerifyState(state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	grant, err := s.authorizer.Exchange(ctx, userID, code)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.grants.Upsert(ctx, grant); err != nil {
		return fmt.Errorf("%s: failed to store calendar grant: %w", op, err)
	}

	s.log.Info("calendar connected", slog.String("op", op), slog.String("user_id", userID))

	return nil
}

func (s *CalendarServiceImpl) Status(ctx context.Context, userID string) (*CalendarStatus, error) {
	const op = "internal.service.calendar.Status"

	_, err := s.grants.Get(ctx, userID)
	switch {
	case err == nil:
		return &CalendarStatus{Connected: true, Message: "Google Calendar is connected"}, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return &CalendarStatus{Connected: false, Message: "Google Calendar not connected"}, nil
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
}
