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
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/google/uuid"
)

const (
	transitionCreate   = "create"
	transitionAccept   = "accept"
	transitionComplete = "complete"
	transitionCancel   = "cancel"
)

// CalendarAdapter books the interview on a remote calendar using an explicit grant.
type CalendarAdapter interface {
	CreateInterviewEvent(ctx context.Context, grant *domain.CalendarGrant, ev domain.InterviewEvent) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, grant *domain.CalendarGrant, eventID string) error
}

type LinkGenerator interface {
	Link() string
}

type CreateInterviewInput struct {
	Role          domain.Role
	InterviewType domain.InterviewType
	PreferredDate time.Time
	Duration      int
	Notes         string
}

type InterviewService interface {
	Create(ctx context.Context, requesterID string, in CreateInterviewInput) (*domain.InterviewRequest, error)
	Get(ctx context.Context, id string) (*domain.InterviewRequestView, error)
	Mine(ctx context.Context, userID string) ([]domain.InterviewRequestView, error)
	Available(ctx context.Context, userID string) ([]domain.InterviewRequestView, error)
	History(ctx context.Context, userID string) ([]domain.InterviewRequestView, error)
	Accept(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error)
	Complete(ctx context.Context, id, actorID, feedback string, rating int) (*domain.InterviewRequest, error)
	Cancel(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error)
}

type InterviewServiceImpl struct {
	log             *slog.Logger
	requests        repository.InterviewRequestRepository
	users           repository.UserRepository
	grants          repository.CalendarGrantRepository
	calendar        CalendarAdapter
	links           LinkGenerator
	calendarTimeout time.Duration
	now             func() time.Time
}

func NewInterviewService(
	log *slog.Logger,
	requests repository.InterviewRequestRepository,
	users repository.UserRepository,
	grants repository.CalendarGrantRepository,
	calendar CalendarAdapter,
	links LinkGenerator,
	calendarTimeout time.Duration,
) *InterviewServiceImpl {
	return &InterviewServiceImpl{
		log:             log,
		requests:        requests,
		users:           users,
		grants:          grants,
		calendar:        calendar,
		links:           links,
		calendarTimeout: calendarTimeout,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *InterviewServiceImpl) Create(ctx context.Context, requesterID string, in CreateInterviewInput) (*domain.InterviewRequest, error) {
	const op = "internal.service.interview.Create"
	log := s.log.With(slog.String("op", op), slog.String("requester_id", requesterID))

	if err := validateCreate(op, in); err != nil {
		interviewTransitionsTotal.WithLabelValues(transitionCreate, outcomeRejected).Inc()
		return nil, err
	}

	now := s.now()
	req := &domain.InterviewRequest{
		ID:            uuid.NewString(),
		RequesterID:   requesterID,
		Role:          in.Role,
		InterviewType: in.InterviewType,
		PreferredDate: in.PreferredDate.UTC(),
		Duration:      in.Duration,
		Status:        domain.StatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		interviewTransitionsTotal.WithLabelValues(transitionCreate, outcomeError).Inc()
		return nil, fmt.Errorf("%s: failed to create interview request: %w", op, err)
	}

	interviewTransitionsTotal.WithLabelValues(transitionCreate, outcomeOK).Inc()
	log.Info("interview request created", slog.String("request_id", req.ID))

	return req, nil
}

func validateCreate(op string, in CreateInterviewInput) error {
	switch {
	case !in.Role.IsValid():
		return validationError(op, "unknown role '%s'", in.Role)
	case !in.InterviewType.IsValid():
		return validationError(op, "unknown interview type '%s'", in.InterviewType)
	case !domain.IsValidDuration(in.Duration):
		return validationError(op, "duration must be 15, 30 or 45 minutes")
	case in.PreferredDate.IsZero():
		return validationError(op, "preferred date is required")
	}

	return nil
}

func (s *InterviewServiceImpl) Get(ctx context.Context, id string) (*domain.InterviewRequestView, error) {
	const op = "internal.service.interview.Get"

	if err := checkID(op, "interview request", id); err != nil {
		return nil, err
	}

	view, err := s.requests.GetView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

func (s *InterviewServiceImpl) Mine(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return s.find(ctx, "internal.service.interview.Mine", domain.InterviewFilter{RequesterID: userID})
}

func (s *InterviewServiceImpl) Available(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return s.find(ctx, "internal.service.interview.Available", domain.InterviewFilter{
		ExcludeRequesterID: userID,
		Statuses:           []domain.Status{domain.StatusPending},
	})
}

func (s *InterviewServiceImpl) History(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return s.find(ctx, "internal.service.interview.History", domain.InterviewFilter{
		ParticipantID: userID,
		Statuses:      []domain.Status{domain.StatusCompleted, domain.StatusCancelled},
	})
}

func (s *InterviewServiceImpl) find(ctx context.Context, op string, filter domain.InterviewFilter) ([]domain.InterviewRequestView, error) {
	views, err := s.requests.FindMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to find interview requests: %w", op, err)
	}

	return views, nil
}

func (s *InterviewServiceImpl) Accept(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error) {
	const op = "internal.service.interview.Accept"
	log := s.log.With(slog.String("op", op), slog.String("request_id", id), slog.String("actor_id", actorID))

	req, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := req.CheckAccept(actorID); err != nil {
		interviewTransitionsTotal.WithLabelValues(transitionAccept, outcomeRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	interviewer, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get interviewer: %w", op, err)
	}

	requester, err := s.users.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get requester: %w", op, err)
	}

	event, grant := s.bookCalendar(ctx, log, req, requester, interviewer)

	patch := domain.InterviewPatch{
		Status:        domain.StatusAccepted,
		InterviewerID: &actorID,
		UpdatedAt:     s.now(),
	}

	if event != nil {
		patch.MeetingLink = &event.MeetingLink
		patch.CalendarEventID = &event.EventID
	} else {
		link := s.links.Link()
		patch.MeetingLink = &link
	}

	updated, err := s.requests.Update(ctx, id, domain.AcceptGuard(actorID), patch)
	if err != nil {
		if event != nil {
			s.discardEvent(ctx, log, grant, event.EventID)
		}

		return nil, s.transitionFailed(op, transitionAccept, err)
	}

	interviewTransitionsTotal.WithLabelValues(transitionAccept, outcomeOK).Inc()
	log.Info("interview request accepted", slog.Bool("calendar_event", event != nil))

	return updated, nil
}

// bookCalendar never fails: every problem is logged and turns into a nil
// event so the caller falls back to a generated link.
func (s *InterviewServiceImpl) bookCalendar(
	ctx context.Context,
	log *slog.Logger,
	req *domain.InterviewRequest,
	requester, interviewer *domain.User,
) (*domain.CalendarEvent, *domain.CalendarGrant) {
	grant, err := s.grantFor(ctx, interviewer.ID, requester.ID)
	if err != nil {
		reason := "remote_error"
		if errors.Is(err, apperrors.ErrCalendarNotAuthorized) {
			reason = "not_authorized"
		}

		calendarFallbacksTotal.WithLabelValues(reason).Inc()
		log.Info("calendar booking skipped, using fallback link", sl.Err(err))

		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.calendarTimeout)
	defer cancel()

	event, err := s.calendar.CreateInterviewEvent(callCtx, grant, domain.InterviewEvent{
		RequestID:        req.ID,
		Role:             req.Role,
		InterviewType:    req.InterviewType,
		Start:            req.PreferredDate,
		DurationMinutes:  req.Duration,
		Notes:            req.Notes,
		RequesterEmail:   requester.Email,
		InterviewerEmail: interviewer.Email,
	})
	if err != nil {
		reason := "remote_error"
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			reason = "timeout"
		}

		calendarFallbacksTotal.WithLabelValues(reason).Inc()
		log.Warn("calendar booking failed, using fallback link", sl.Err(err))

		return nil, nil
	}

	return event, grant
}

// grantFor prefers the interviewer's calendar and falls back to the requester's.
func (s *InterviewServiceImpl) grantFor(ctx context.Context, userIDs ...string) (*domain.CalendarGrant, error) {
	const op = "internal.service.interview.grantFor"

	for _, userID := range userIDs {
		grant, err := s.grants.Get(ctx, userID)
		if err == nil {
			return grant, nil
		}

		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w: %w", op, apperrors.ErrCalendarRemote, err)
		}
	}

	return nil, fmt.Errorf("%s: %w", op, apperrors.ErrCalendarNotAuthorized)
}

// discardEvent removes an event booked for an acceptance that lost the race.
func (s *InterviewServiceImpl) discardEvent(ctx context.Context, log *slog.Logger, grant *domain.CalendarGrant, eventID string) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.calendarTimeout)
	defer cancel()

	if err := s.calendar.DeleteEvent(delCtx, grant, eventID); err != nil {
		log.Warn("failed to delete orphaned calendar event", slog.String("event_id", eventID), sl.Err(err))
		return
	}

	log.Info("orphaned calendar event deleted", slog.String("event_id", eventID))
}

func (s *InterviewServiceImpl) Complete(ctx context.Context, id, actorID, feedback string, rating int) (*domain.InterviewRequest, error) {
	const op = "internal.service.interview.Complete"
	log := s.log.With(slog.String("op", op), slog.String("request_id", id), slog.String("actor_id", actorID))

	if rating < 1 || rating > 5 {
		return nil, validationError(op, "rating must be between 1 and 5")
	}

	req, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := req.CheckComplete(actorID); err != nil {
		interviewTransitionsTotal.WithLabelValues(transitionComplete, outcomeRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.requests.Update(ctx, id, domain.CompleteGuard(actorID), domain.InterviewPatch{
		Status:    domain.StatusCompleted,
		Feedback:  &feedback,
		Rating:    &rating,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, s.transitionFailed(op, transitionComplete, err)
	}

	interviewTransitionsTotal.WithLabelValues(transitionComplete, outcomeOK).Inc()
	log.Info("interview completed", slog.Int("rating", rating))

	return updated, nil
}

func (s *InterviewServiceImpl) Cancel(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error) {
	const op = "internal.service.interview.Cancel"
	log := s.log.With(slog.String("op", op), slog.String("request_id", id), slog.String("actor_id", actorID))

	req, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := req.CheckCancel(actorID); err != nil {
		interviewTransitionsTotal.WithLabelValues(transitionCancel, outcomeRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.requests.Update(ctx, id, domain.CancelGuard(actorID), domain.InterviewPatch{
		Status:    domain.StatusCancelled,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, s.transitionFailed(op, transitionCancel, err)
	}

	interviewTransitionsTotal.WithLabelValues(transitionCancel, outcomeOK).Inc()
	log.Info("interview request cancelled", slog.String("from_status", string(req.Status)))

	return updated, nil
}

func (s *InterviewServiceImpl) load(ctx context.Context, op, id string) (*domain.InterviewRequest, error) {
	if err := checkID(op, "interview request", id); err != nil {
		return nil, err
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return req, nil
}

// transitionFailed maps a failed conditional update. A guard miss means
// another writer moved the record after it was read.
func (s *InterviewServiceImpl) transitionFailed(op, transition string, err error) error {
	if errors.Is(err, apperrors.ErrStatusConflict) {
		interviewTransitionsTotal.WithLabelValues(transition, outcomeConflict).Inc()
		return fmt.Errorf("%s: %w", op, domain.ConcurrentModification())
	}

	interviewTransitionsTotal.WithLabelValues(transition, outcomeError).Inc()

	return fmt.Errorf("%s: failed to update interview request: %w", op, err)
}
