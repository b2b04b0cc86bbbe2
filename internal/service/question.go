package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type QuestionInput struct {
	Company        string
	Role           string
	Question       string
	Round          string
	Difficulty     string
	Frequency      string
	FrequencyCount int
	PostedBy       string
}

type QuestionService interface {
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	Create(ctx context.Context, handle string, in QuestionInput) (*domain.Question, error)
	Like(ctx context.Context, userID, questionID string) (*domain.Question, error)
	View(ctx context.Context, questionID string) (*domain.Question, error)
}

type QuestionServiceImpl struct {
	BaseService
	questions repository.QuestionRepository
	users     repository.UserRepository
}

func NewQuestionService(
	db Transactor,
	log *slog.Logger,
	questions repository.QuestionRepository,
	users repository.UserRepository,
) *QuestionServiceImpl {
	return &QuestionServiceImpl{
		BaseService: NewBaseService(db, log),
		questions:   questions,
		users:       users,
	}
}

func (s *QuestionServiceImpl) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	const op = "internal.service.question.List"

	switch filter.SortBy {
	case domain.SortNewest, domain.SortViews, domain.SortLikes, domain.SortFrequency:
	default:
		return nil, validationError(op, "sortBy must be one of views, likes, frequency")
	}

	questions, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return questions, nil
}

// Create records a question; PostedBy defaults to the caller's handle.
func (s *QuestionServiceImpl) Create(ctx context.Context, handle string, in QuestionInput) (*domain.Question, error) {
	const op = "internal.service.question.Create"

	if !domain.OneOf(in.Frequency, domain.QuestionFrequencies) {
		return nil, validationError(op, "frequency must be one of %s", strings.Join(domain.QuestionFrequencies, ", "))
	}

	postedBy := in.PostedBy
	if postedBy == "" {
		postedBy = handle
	}

	q := &domain.Question{
		ID:             uuid.NewString(),
		Company:        in.Company,
		Role:           in.Role,
		Question:       in.Question,
		Round:          in.Round,
		Difficulty:     in.Difficulty,
		Frequency:      in.Frequency,
		FrequencyCount: in.FrequencyCount,
		PostedBy:       postedBy,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("question created", slog.String("op", op), slog.String("question_id", q.ID))

	return q, nil
}

// Like counts at most one like per user and question.
func (s *QuestionServiceImpl) Like(ctx context.Context, userID, questionID string) (*domain.Question, error) {
	const op = "internal.service.question.Like"
	log := s.log.With(slog.String("op", op), slog.String("question_id", questionID), slog.String("user_id", userID))

	if err := checkID(op, "question", questionID); err != nil {
		return nil, err
	}

	var (
		q     *domain.Question
		liked bool
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		liked, err = s.users.LikeQuestion(ctx, tx, userID, questionID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if !liked {
			q, err = s.questions.GetByID(ctx, tx, questionID)
		} else {
			q, err = s.questions.IncrementLikes(ctx, tx, questionID)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if liked {
		log.Info("question liked", slog.Int("likes", q.Likes))
	}

	return q, nil
}

func (s *QuestionServiceImpl) View(ctx context.Context, questionID string) (*domain.Question, error) {
	const op = "internal.service.question.View"

	if err := checkID(op, "question", questionID); err != nil {
		return nil, err
	}

	q, err := s.questions.IncrementViews(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return q, nil
}
