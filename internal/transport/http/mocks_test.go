package http

import (
	"context"

	"github.com/YusovID/campus-prep/internal/auth"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/service"
	"github.com/stretchr/testify/mock"
)

type TokenVerifierMock struct {
	mock.Mock
}

func (m *TokenVerifierMock) Verify(token string) (auth.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) Signup(ctx context.Context, in service.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Session), args.Error(1)
}

type InterviewServiceMock struct {
	mock.Mock
}

var _ service.InterviewService = (*InterviewServiceMock)(nil)

func (m *InterviewServiceMock) Create(ctx context.Context, requesterID string, in service.CreateInterviewInput) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, requesterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *InterviewServiceMock) Get(ctx context.Context, id string) (*domain.InterviewRequestView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequestView), args.Error(1)
}

func (m *InterviewServiceMock) views(args mock.Arguments) ([]domain.InterviewRequestView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.InterviewRequestView), args.Error(1)
}

func (m *InterviewServiceMock) Mine(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return m.views(m.Called(ctx, userID))
}

func (m *InterviewServiceMock) Available(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return m.views(m.Called(ctx, userID))
}

func (m *InterviewServiceMock) History(ctx context.Context, userID string) ([]domain.InterviewRequestView, error) {
	return m.views(m.Called(ctx, userID))
}

func (m *InterviewServiceMock) record(args mock.Arguments) (*domain.InterviewRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *InterviewServiceMock) Accept(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error) {
	return m.record(m.Called(ctx, id, actorID))
}

func (m *InterviewServiceMock) Complete(ctx context.Context, id, actorID, feedback string, rating int) (*domain.InterviewRequest, error) {
	return m.record(m.Called(ctx, id, actorID, feedback, rating))
}

func (m *InterviewServiceMock) Cancel(ctx context.Context, id, actorID string) (*domain.InterviewRequest, error) {
	return m.record(m.Called(ctx, id, actorID))
}

type QuestionServiceMock struct {
	mock.Mock
}

var _ service.QuestionService = (*QuestionServiceMock)(nil)

func (m *QuestionServiceMock) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *QuestionServiceMock) question(args mock.Arguments) (*domain.Question, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *QuestionServiceMock) Create(ctx context.Context, handle string, in service.QuestionInput) (*domain.Question, error) {
	return m.question(m.Called(ctx, handle, in))
}

func (m *QuestionServiceMock) Like(ctx context.Context, userID, questionID string) (*domain.Question, error) {
	return m.question(m.Called(ctx, userID, questionID))
}

func (m *QuestionServiceMock) View(ctx context.Context, questionID string) (*domain.Question, error) {
	return m.question(m.Called(ctx, questionID))
}

type ChatServiceMock struct {
	mock.Mock
}

var _ service.ChatService = (*ChatServiceMock)(nil)

func (m *ChatServiceMock) History(ctx context.Context) ([]domain.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *ChatServiceMock) Post(ctx context.Context, handle, message string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, handle, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

type CalendarServiceMock struct {
	mock.Mock
}

var _ service.CalendarService = (*CalendarServiceMock)(nil)

func (m *CalendarServiceMock) ConnectURL(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *CalendarServiceMock) Callback(ctx context.Context, code, state string) error {
	args := m.Called(ctx, code, state)
	return args.Error(0)
}

func (m *CalendarServiceMock) Status(ctx context.Context, userID string) (*service.CalendarStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CalendarStatus), args.Error(1)
}

type ProfileServiceMock struct {
	mock.Mock
}

var _ service.ProfileService = (*ProfileServiceMock)(nil)

func (m *ProfileServiceMock) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileServiceMock) LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *ProfileServiceMock) Materials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ProfileMaterial), args.Error(1)
}

func (m *ProfileServiceMock) AddMaterial(ctx context.Context, userID string, in service.ProfileMaterialInput) (*domain.ProfileMaterial, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ProfileMaterial), args.Error(1)
}

func (m *ProfileServiceMock) RemoveMaterial(ctx context.Context, userID, materialID string) error {
	args := m.Called(ctx, userID, materialID)
	return args.Error(0)
}

type StudyMaterialServiceMock struct {
	mock.Mock
}

var _ service.StudyMaterialService = (*StudyMaterialServiceMock)(nil)

func (m *StudyMaterialServiceMock) List(ctx context.Context) ([]domain.StudyMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.StudyMaterial), args.Error(1)
}

func (m *StudyMaterialServiceMock) Create(ctx context.Context, userID string, in service.StudyMaterialInput) (*domain.StudyMaterial, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.StudyMaterial), args.Error(1)
}
