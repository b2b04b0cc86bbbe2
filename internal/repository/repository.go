// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

// InterviewRequestRepository is the Request Store of the mock-interview state machine.
type InterviewRequestRepository interface {
	// Create inserts a new request record.
	Create(ctx context.Context, req *domain.InterviewRequest) error

	// GetByID returns the raw record.
	// It returns apperrors.ErrNotFound if the record does not exist.
	GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error)

	// GetView returns the record with requester and interviewer expanded.
	// It returns apperrors.ErrNotFound if the record does not exist.
	GetView(ctx context.Context, id string) (*domain.InterviewRequestView, error)

	// FindMany returns every record matching filter, newest first.
	FindMany(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewRequestView, error)

	// Update applies patch only if guard still holds, in a single statement.
	// It returns apperrors.ErrNotFound if the record does not exist and
	// apperrors.ErrStatusConflict if it exists but the guard failed.
	Update(ctx context.Context, id string, guard domain.TransitionGuard, patch domain.InterviewPatch) (*domain.InterviewRequest, error)
}

// UserRepository defines the contract for account data.
type UserRepository interface {
	// Create inserts a user.
	// It returns *apperrors.UserAlreadyExistsError when the email or handle is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns apperrors.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail returns apperrors.ErrNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	TouchLastLogin(ctx context.Context, id string, at time.Time) error

	// LikeQuestion records a like and reports whether it is new.
	// It is meant to run inside the transaction that bumps the like counter.
	LikeQuestion(ctx context.Context, tx *sqlx.Tx, userID, questionID string) (bool, error)

	LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error)

	AddProfileMaterial(ctx context.Context, m *domain.ProfileMaterial) error
	ProfileMaterials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error)

	// RemoveProfileMaterial returns apperrors.ErrNotFound if the user has no such material.
	RemoveProfileMaterial(ctx context.Context, userID, materialID string) error
}

// QuestionRepository defines the contract for the question bank.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)

	// IncrementLikes bumps the like counter inside tx and returns the updated question.
	// It returns apperrors.ErrNotFound if the question does not exist.
	IncrementLikes(ctx context.Context, tx *sqlx.Tx, id string) (*domain.Question, error)

	// GetByID may run on a transaction or directly on the DB.
	GetByID(ctx context.Context, ext sqlx.QueryerContext, id string) (*domain.Question, error)

	// IncrementViews returns apperrors.ErrNotFound if the question does not exist.
	IncrementViews(ctx context.Context, id string) (*domain.Question, error)
}

// StudyMaterialRepository defines the contract for the shared study catalog.
type StudyMaterialRepository interface {
	Create(ctx context.Context, m *domain.StudyMaterial) error
	List(ctx context.Context) ([]domain.StudyMaterial, error)
}

// ChatRepository persists chat messages.
type ChatRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error

	// Recent returns at most limit messages, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}

// CalendarGrantRepository stores the per-user calendar authorization.
type CalendarGrantRepository interface {
	// Upsert replaces the grant held for grant.UserID.
	Upsert(ctx context.Context, grant *domain.CalendarGrant) error

	// Get returns apperrors.ErrNotFound if the user never connected a calendar.
	Get(ctx context.Context, userID string) (*domain.CalendarGrant, error)
}
