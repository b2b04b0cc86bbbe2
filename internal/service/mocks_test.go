package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type InterviewRequestRepositoryMock struct {
	mock.Mock
}

var _ repository.InterviewRequestRepository = (*InterviewRequestRepositoryMock)(nil)

func (m *InterviewRequestRepositoryMock) Create(ctx context.Context, req *domain.InterviewRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *InterviewRequestRepositoryMock) GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *InterviewRequestRepositoryMock) GetView(ctx context.Context, id string) (*domain.InterviewRequestView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequestView), args.Error(1)
}

func (m *InterviewRequestRepositoryMock) FindMany(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewRequestView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.InterviewRequestView), args.Error(1)
}

func (m *InterviewRequestRepositoryMock) Update(
	ctx context.Context,
	id string,
	guard domain.TransitionGuard,
	patch domain.InterviewPatch,
) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id, guard, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserRepositoryMock) LikeQuestion(ctx context.Context, tx *sqlx.Tx, userID, questionID string) (bool, error) {
	args := m.Called(ctx, tx, userID, questionID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *UserRepositoryMock) AddProfileMaterial(ctx context.Context, pm *domain.ProfileMaterial) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *UserRepositoryMock) ProfileMaterials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ProfileMaterial), args.Error(1)
}

func (m *UserRepositoryMock) RemoveProfileMaterial(ctx context.Context, userID, materialID string) error {
	args := m.Called(ctx, userID, materialID)
	return args.Error(0)
}

type QuestionRepositoryMock struct {
	mock.Mock
}

var _ repository.QuestionRepository = (*QuestionRepositoryMock)(nil)

func (m *QuestionRepositoryMock) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuestionRepositoryMock) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *QuestionRepositoryMock) IncrementLikes(ctx context.Context, tx *sqlx.Tx, id string) (*domain.Question, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *QuestionRepositoryMock) GetByID(ctx context.Context, ext sqlx.QueryerContext, id string) (*domain.Question, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *QuestionRepositoryMock) IncrementViews(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Question), args.Error(1)
}

type StudyMaterialRepositoryMock struct {
	mock.Mock
}

var _ repository.StudyMaterialRepository = (*StudyMaterialRepositoryMock)(nil)

func (m *StudyMaterialRepositoryMock) Create(ctx context.Context, sm *domain.StudyMaterial) error {
	args := m.Called(ctx, sm)
	return args.Error(0)
}

func (m *StudyMaterialRepositoryMock) List(ctx context.Context) ([]domain.StudyMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.StudyMaterial), args.Error(1)
}

type ChatRepositoryMock struct {
	mock.Mock
}

var _ repository.ChatRepository = (*ChatRepositoryMock)(nil)

func (m *ChatRepositoryMock) Create(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepositoryMock) Recent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

type CalendarGrantRepositoryMock struct {
	mock.Mock
}

var _ repository.CalendarGrantRepository = (*CalendarGrantRepositoryMock)(nil)

func (m *CalendarGrantRepositoryMock) Upsert(ctx context.Context, grant *domain.CalendarGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *CalendarGrantRepositoryMock) Get(ctx context.Context, userID string) (*domain.CalendarGrant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.CalendarGrant), args.Error(1)
}

type CalendarAdapterMock struct {
	mock.Mock
}

func (m *CalendarAdapterMock) CreateInterviewEvent(ctx context.Context, grant *domain.CalendarGrant, ev domain.InterviewEvent) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, grant, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.CalendarEvent), args.Error(1)
}

func (m *CalendarAdapterMock) DeleteEvent(ctx context.Context, grant *domain.CalendarGrant, eventID string) error {
	args := m.Called(ctx, grant, eventID)
	return args.Error(0)
}

type staticLinks string

func (l staticLinks) Link() string { return string(l) }

type BroadcasterMock struct {
	mock.Mock
}

func (m *BroadcasterMock) Publish(ctx context.Context, msg domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type TokenIssuerMock struct {
	mock.Mock
}

func (m *TokenIssuerMock) Issue(userID, handle string) (string, error) {
	args := m.Called(userID, handle)
	return args.String(0), args.Error(1)
}

type CalendarAuthorizerMock struct {
	mock.Mock
}

func (m *CalendarAuthorizerMock) Configured() bool {
	return m.Called().Bool(0)
}

func (m *CalendarAuthorizerMock) AuthURL(state string) string {
	return m.Called(state).String(0)
}

func (m *CalendarAuthorizerMock) Exchange(ctx context.Context, userID, code string) (*domain.CalendarGrant, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.CalendarGrant), args.Error(1)
}

type StateSignerMock struct {
	mock.Mock
}

func (m *StateSignerMock) IssueState(userID string, ttl time.Duration) (string, error) {
	args := m.Called(userID, ttl)
	return args.String(0), args.Error(1)
}

func (m *StateSignerMock) VerifyState(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}
