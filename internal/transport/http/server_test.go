package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/auth"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	aliceID    = "0a7c8b4e-1111-4c2d-8e9f-000000000001"
	bobID      = "0a7c8b4e-2222-4c2d-8e9f-000000000002"
	requestID  = "6f1c1a52-3f4e-4a8e-9c3e-2b1f0d9a7e01"
	validToken = "valid-token"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	handler    http.Handler
	tokens     *TokenVerifierMock
	auth       *AuthServiceMock
	interviews *InterviewServiceMock
	profiles   *ProfileServiceMock
	questions  *QuestionServiceMock
	materials  *StudyMaterialServiceMock
	chat       *ChatServiceMock
	calendar   *CalendarServiceMock
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	ts := &testServer{
		tokens:     new(TokenVerifierMock),
		auth:       new(AuthServiceMock),
		interviews: new(InterviewServiceMock),
		profiles:   new(ProfileServiceMock),
		questions:  new(QuestionServiceMock),
		materials:  new(StudyMaterialServiceMock),
		chat:       new(ChatServiceMock),
		calendar:   new(CalendarServiceMock),
	}

	ts.tokens.On("Verify", validToken).Return(auth.Identity{UserID: aliceID, Handle: "alice"}, nil).Maybe()
	ts.tokens.On("Verify", mock.Anything).Return(auth.Identity{}, apperrors.ErrUnauthorized).Maybe()

	server := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), Services{
		Auth:       ts.auth,
		Interviews: ts.interviews,
		Profiles:   ts.profiles,
		Questions:  ts.questions,
		Materials:  ts.materials,
		Chat:       ts.chat,
		Calendar:   ts.calendar,
	}, ts.tokens, nil, opts)
	t.Cleanup(server.Close)

	ts.handler = server.Routes()

	return ts
}

func (ts *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	return rr
}

func (ts *testServer) assertExpectations(t *testing.T) {
	ts.auth.AssertExpectations(t)
	ts.interviews.AssertExpectations(t)
	ts.profiles.AssertExpectations(t)
	ts.questions.AssertExpectations(t)
	ts.materials.AssertExpectations(t)
	ts.chat.AssertExpectations(t)
	ts.calendar.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }

func acceptedRecord() *domain.InterviewRequest {
	return &domain.InterviewRequest{
		ID:            requestID,
		RequesterID:   bobID,
		InterviewerID: strPtr(aliceID),
		Role:          domain.RoleSDE,
		InterviewType: domain.InterviewTechnical,
		PreferredDate: fixedTime,
		Duration:      30,
		Status:        domain.StatusAccepted,
		MeetingLink:   strPtr("https://meet.google.com/abc-defg-hij"),
		CreatedAt:     fixedTime,
		UpdatedAt:     fixedTime,
	}
}

func TestServer_CreateInterview(t *testing.T) {
	testCases := []struct {
		name                 string
		requestBody          string
		token                string
		setupMocks           func(ts *testServer)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:        "Success",
			requestBody: `{"role":"SDE","interviewType":"Technical","preferredDate":"2026-03-01T12:00:00Z","duration":30,"notes":"graphs"}`,
			token:       validToken,
			setupMocks: func(ts *testServer) {
				ts.interviews.On("Create", mock.Anything, aliceID, service.CreateInterviewInput{
					Role:          domain.RoleSDE,
					InterviewType: domain.InterviewTechnical,
					PreferredDate: fixedTime,
					Duration:      30,
					Notes:         "graphs",
				}).Return(&domain.InterviewRequest{
					ID:            requestID,
					RequesterID:   aliceID,
					Role:          domain.RoleSDE,
					InterviewType: domain.InterviewTechnical,
					PreferredDate: fixedTime,
					Duration:      30,
					Status:        domain.StatusPending,
					Notes:         "graphs",
					CreatedAt:     fixedTime,
					UpdatedAt:     fixedTime,
				}, nil).Once()
			},
			expectedStatusCode: http.StatusCreated,
			expectedResponseBody: `{"_id":"` + requestID + `","requester":"` + aliceID + `","interviewer":null,
				"role":"SDE","interviewType":"Technical","preferredDate":"2026-03-01T12:00:00Z","duration":30,
				"status":"Pending","googleMeetLink":null,"googleCalendarEventId":null,"notes":"graphs",
				"feedback":null,"rating":null,"createdAt":"2026-03-01T12:00:00Z","updatedAt":"2026-03-01T12:00:00Z"}`,
		},
		{
			name:                 "Invalid duration",
			requestBody:          `{"role":"SDE","interviewType":"Technical","preferredDate":"2026-03-01T12:00:00Z","duration":60}`,
			token:                validToken,
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'duration' must be 15, 30 or 45 minutes"}`,
		},
		{
			name:                 "Unknown role",
			requestBody:          `{"role":"Astronaut","interviewType":"Technical","preferredDate":"2026-03-01T12:00:00Z","duration":30}`,
			token:                validToken,
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'role' must be a known role"}`,
		},
		{
			name:                 "Invalid JSON Body",
			requestBody:          `{invalid json}`,
			token:                validToken,
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid request body"}`,
		},
		{
			name:                 "Missing token",
			requestBody:          `{}`,
			expectedStatusCode:   http.StatusUnauthorized,
			expectedResponseBody: `{"error":"access token required"}`,
		},
		{
			name:                 "Bad token",
			requestBody:          `{}`,
			token:                "forged",
			expectedStatusCode:   http.StatusUnauthorized,
			expectedResponseBody: `{"error":"invalid or expired token"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, Options{})
			if tc.setupMocks != nil {
				tc.setupMocks(ts)
			}

			rr := ts.do(http.MethodPost, "/api/interview-requests", tc.requestBody, tc.token)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}
}

func TestServer_AcceptInterview(t *testing.T) {
	testCases := []struct {
		name                 string
		serviceErr           error
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:                 "Own request",
			serviceErr:           &apperrors.InvalidTransitionError{Reason: "cannot accept your own interview request"},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"cannot accept your own interview request"}`,
		},
		{
			name:                 "Lost race",
			serviceErr:           domain.ConcurrentModification(),
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"interview request was modified concurrently"}`,
		},
		{
			name:                 "Not found",
			serviceErr:           apperrors.ErrNotFound,
			expectedStatusCode:   http.StatusNotFound,
			expectedResponseBody: `{"error":"resource not found"}`,
		},
		{
			name:                 "Internal failure",
			serviceErr:           assert.AnError,
			expectedStatusCode:   http.StatusInternalServerError,
			expectedResponseBody: `{"error":"internal server error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, Options{})
			ts.interviews.On("Accept", mock.Anything, requestID, aliceID).Return(nil, tc.serviceErr).Once()

			rr := ts.do(http.MethodPut, "/api/interview-requests/"+requestID+"/accept", "", validToken)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}

	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.interviews.On("Accept", mock.Anything, requestID, aliceID).Return(acceptedRecord(), nil).Once()

		rr := ts.do(http.MethodPut, "/api/interview-requests/"+requestID+"/accept", "", validToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"Accepted"`)
		assert.Contains(t, rr.Body.String(), `"googleMeetLink":"https://meet.google.com/abc-defg-hij"`)
		assert.Contains(t, rr.Body.String(), `"interviewer":"`+aliceID+`"`)
		ts.assertExpectations(t)
	})
}

func TestServer_CompleteInterview(t *testing.T) {
	testCases := []struct {
		name                 string
		requestBody          string
		setupMocks           func(ts *testServer)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:        "Wrong actor",
			requestBody: `{"feedback":"Good","rating":4}`,
			setupMocks: func(ts *testServer) {
				ts.interviews.On("Complete", mock.Anything, requestID, aliceID, "Good", 4).
					Return(nil, &apperrors.ForbiddenError{Reason: "only the assigned interviewer can complete the interview"}).Once()
			},
			expectedStatusCode:   http.StatusForbidden,
			expectedResponseBody: `{"error":"only the assigned interviewer can complete the interview"}`,
		},
		{
			name:                 "Rating out of range",
			requestBody:          `{"feedback":"Good","rating":9}`,
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'rating' failed on the 'max=5' tag"}`,
		},
		{
			name:        "Success",
			requestBody: `{"feedback":"Good","rating":4}`,
			setupMocks: func(ts *testServer) {
				rec := acceptedRecord()
				rec.Status = domain.StatusCompleted
				rec.Feedback = strPtr("Good")
				rating := 4
				rec.Rating = &rating
				ts.interviews.On("Complete", mock.Anything, requestID, aliceID, "Good", 4).Return(rec, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, Options{})
			if tc.setupMocks != nil {
				tc.setupMocks(ts)
			}

			rr := ts.do(http.MethodPut, "/api/interview-requests/"+requestID+"/complete", tc.requestBody, validToken)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectedResponseBody != "" {
				assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			}
			ts.assertExpectations(t)
		})
	}
}

func TestServer_CancelInterview(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.interviews.On("Cancel", mock.Anything, requestID, aliceID).
		Return(nil, &apperrors.InvalidTransitionError{Reason: "interview request cannot be cancelled"}).Once()

	rr := ts.do(http.MethodPut, "/api/interview-requests/"+requestID+"/cancel", "", validToken)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"interview request cannot be cancelled"}`, rr.Body.String())
	ts.assertExpectations(t)
}

func TestServer_InterviewViews(t *testing.T) {
	view := domain.InterviewRequestView{
		InterviewRequest: domain.InterviewRequest{
			ID:            requestID,
			RequesterID:   bobID,
			Role:          domain.RoleAnalyst,
			InterviewType: domain.InterviewHR,
			PreferredDate: fixedTime,
			Duration:      15,
			Status:        domain.StatusPending,
			CreatedAt:     fixedTime,
			UpdatedAt:     fixedTime,
		},
		Requester: domain.Participant{ID: bobID, FullName: "Bob", Email: "bob@campus.test"},
	}

	testCases := []struct {
		name   string
		path   string
		method string
	}{
		{name: "Mine", path: "/api/interview-requests/my-requests", method: "Mine"},
		{name: "Available", path: "/api/interview-requests/available", method: "Available"},
		{name: "History", path: "/api/interview-requests/history", method: "History"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, Options{})
			ts.interviews.On(tc.method, mock.Anything, aliceID).Return([]domain.InterviewRequestView{view}, nil).Once()

			rr := ts.do(http.MethodGet, tc.path, "", validToken)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `[{"_id":"`+requestID+`",
				"requester":{"_id":"`+bobID+`","fullName":"Bob","email":"bob@campus.test"},"interviewer":null,
				"role":"Analyst","interviewType":"HR","preferredDate":"2026-03-01T12:00:00Z","duration":15,
				"status":"Pending","googleMeetLink":null,"googleCalendarEventId":null,"notes":"",
				"feedback":null,"rating":null,"createdAt":"2026-03-01T12:00:00Z","updatedAt":"2026-03-01T12:00:00Z"}]`,
				rr.Body.String())
			ts.assertExpectations(t)
		})
	}

	t.Run("Single record", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		withInterviewer := view
		withInterviewer.Interviewer = &domain.Participant{ID: aliceID, FullName: "Alice", Email: "alice@campus.test"}
		ts.interviews.On("Get", mock.Anything, requestID).Return(&withInterviewer, nil).Once()

		rr := ts.do(http.MethodGet, "/api/interview-requests/"+requestID, "", validToken)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"interviewer":{"_id":"`+aliceID+`","fullName":"Alice","email":"alice@campus.test"}`)
		ts.assertExpectations(t)
	})
}

func TestServer_Auth(t *testing.T) {
	t.Run("Signup duplicate", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.auth.On("Signup", mock.Anything, mock.MatchedBy(func(in service.SignupInput) bool {
			return in.Handle == "alice_01" && in.Email == "alice@campus.test"
		})).Return(nil, &apperrors.UserAlreadyExistsError{Email: "alice@campus.test"}).Once()

		rr := ts.do(http.MethodPost, "/api/auth/signup",
			`{"userId":"alice_01","fullName":"Alice","email":"alice@campus.test","password":"secret1","college":"IIT","branch":"CSE","yearOfStudy":"3"}`, "")

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.JSONEq(t, `{"error":"user with this email or user id already exists"}`, rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Signup missing fields", func(t *testing.T) {
		ts := newTestServer(t, Options{})

		rr := ts.do(http.MethodPost, "/api/auth/signup", `{"userId":"alice_01"}`, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "field 'fullName' is required")
	})

	t.Run("Login success", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.auth.On("Login", mock.Anything, "alice@campus.test", "secret1").Return(&service.Session{
			Token: "jwt",
			User:  &domain.User{ID: aliceID, Handle: "alice", Email: "alice@campus.test", CreatedAt: fixedTime, LastLogin: fixedTime},
		}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/auth/login", `{"email":"alice@campus.test","password":"secret1"}`, "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"token":"jwt","user":{"_id":"`+aliceID+`","userId":"alice","fullName":"","email":"alice@campus.test",
			"college":"","branch":"","yearOfStudy":"","createdAt":"2026-03-01T12:00:00Z","lastLogin":"2026-03-01T12:00:00Z"}}`,
			rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Login wrong password", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.auth.On("Login", mock.Anything, "alice@campus.test", "nope").Return(nil, apperrors.ErrInvalidCredentials).Once()

		rr := ts.do(http.MethodPost, "/api/auth/login", `{"email":"alice@campus.test","password":"nope"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rr.Body.String())
		ts.assertExpectations(t)
	})
}

func TestServer_Questions(t *testing.T) {
	t.Run("List passes filters", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.questions.On("List", mock.Anything, domain.QuestionFilter{
			Company:    "Google",
			Difficulty: "Hard",
			SortBy:     domain.SortLikes,
		}).Return([]domain.Question{}, nil).Once()

		rr := ts.do(http.MethodGet, "/api/questions?company=Google&difficulty=Hard&sortBy=likes", "", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Like requires token", func(t *testing.T) {
		ts := newTestServer(t, Options{})

		rr := ts.do(http.MethodPut, "/api/questions/"+requestID+"/like", "", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Like", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.questions.On("Like", mock.Anything, aliceID, requestID).
			Return(&domain.Question{ID: requestID, Likes: 3, CreatedAt: fixedTime}, nil).Once()

		rr := ts.do(http.MethodPut, "/api/questions/"+requestID+"/like", "", validToken)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"likes":3`)
		ts.assertExpectations(t)
	})

	t.Run("Create defaults author to handle", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.questions.On("Create", mock.Anything, "alice", mock.AnythingOfType("service.QuestionInput")).
			Return(&domain.Question{ID: requestID, PostedBy: "alice"}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/questions",
			`{"company":"Google","role":"SDE","question":"Design a URL shortener","round":"Technical","difficulty":"Hard","frequency":"Sometimes"}`, validToken)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"postedBy":"alice"`)
		ts.assertExpectations(t)
	})

	t.Run("Create without frequency", func(t *testing.T) {
		ts := newTestServer(t, Options{})

		rr := ts.do(http.MethodPost, "/api/questions",
			`{"company":"Google","role":"SDE","question":"Design a URL shortener","round":"Technical","difficulty":"Hard"}`, validToken)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"validation failed: field 'frequency' is required"}`, rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Create with unknown frequency", func(t *testing.T) {
		ts := newTestServer(t, Options{})

		rr := ts.do(http.MethodPost, "/api/questions",
			`{"company":"Google","role":"SDE","question":"Design a URL shortener","round":"Technical","difficulty":"Hard","frequency":"Often"}`, validToken)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"validation failed: field 'frequency' must be one of Rare, Sometimes, Frequently Asked"}`, rr.Body.String())
		ts.assertExpectations(t)
	})
}

func TestServer_Chat(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.chat.On("Post", mock.Anything, "alice", "hello").
		Return(&domain.ChatMessage{ID: "m1", Username: "alice", Message: "hello", CreatedAt: fixedTime}, nil).Once()
	ts.chat.On("History", mock.Anything).Return([]domain.ChatMessage{}, nil).Once()

	rr := ts.do(http.MethodPost, "/api/chat", `{"message":"hello"}`, validToken)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"_id":"m1","username":"alice","message":"hello","createdAt":"2026-03-01T12:00:00Z"}`, rr.Body.String())

	rr = ts.do(http.MethodGet, "/api/chat", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	ts.assertExpectations(t)
}

func TestServer_Calendar(t *testing.T) {
	t.Run("Connect without credentials", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.calendar.On("ConnectURL", mock.Anything, aliceID).Return("", apperrors.ErrCalendarNotAuthorized).Once()

		rr := ts.do(http.MethodGet, "/auth/google", "", validToken)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		ts.assertExpectations(t)
	})

	t.Run("Connect", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.calendar.On("ConnectURL", mock.Anything, aliceID).Return("https://accounts.google.com/o/oauth2/auth?state=s", nil).Once()

		rr := ts.do(http.MethodGet, "/auth/google", "", validToken)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"url":"https://accounts.google.com/o/oauth2/auth?state=s"}`, rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Callback", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.calendar.On("Callback", mock.Anything, "code-1", "state-1").Return(nil).Once()

		rr := ts.do(http.MethodGet, "/auth/google/callback?code=code-1&state=state-1", "", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		ts.assertExpectations(t)
	})

	t.Run("Callback consent denied", func(t *testing.T) {
		ts := newTestServer(t, Options{})

		rr := ts.do(http.MethodGet, "/auth/google/callback?error=access_denied", "", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"google authorization failed: access_denied"}`, rr.Body.String())
	})

	t.Run("Status", func(t *testing.T) {
		ts := newTestServer(t, Options{})
		ts.calendar.On("Status", mock.Anything, aliceID).
			Return(&service.CalendarStatus{Connected: false, Message: "Google Calendar not connected"}, nil).Once()

		rr := ts.do(http.MethodGet, "/api/google-calendar/status", "", validToken)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"connected":false,"message":"Google Calendar not connected"}`, rr.Body.String())
		ts.assertExpectations(t)
	})
}

func TestServer_Profile(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.profiles.On("Get", mock.Anything, aliceID).Return(&domain.Profile{
		User:           domain.User{ID: aliceID, Handle: "alice", CreatedAt: fixedTime, LastLogin: fixedTime},
		LikedQuestions: []domain.Question{},
		StudyMaterials: []domain.ProfileMaterial{},
	}, nil).Once()
	ts.profiles.On("RemoveMaterial", mock.Anything, aliceID, "missing").Return(apperrors.ErrNotFound).Once()

	rr := ts.do(http.MethodGet, "/api/profile", "", validToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"userId":"alice"`)
	assert.Contains(t, rr.Body.String(), `"likedQuestions":[]`)

	rr = ts.do(http.MethodDelete, "/api/profile/study-materials/missing", "", validToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	ts.assertExpectations(t)
}

func TestServer_Infrastructure(t *testing.T) {
	ts := newTestServer(t, Options{})

	rr := ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = ts.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")

	rr = ts.do(http.MethodGet, "/swagger/openapi.yaml", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_RateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RatePerMinute: 1, RateBurst: 2})
	ts.auth.On("Login", mock.Anything, "alice@campus.test", "nope").Return(nil, apperrors.ErrInvalidCredentials).Twice()

	for range 2 {
		rr := ts.do(http.MethodPost, "/api/auth/login", `{"email":"alice@campus.test","password":"nope"}`, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	}

	rr := ts.do(http.MethodPost, "/api/auth/login", `{"email":"alice@campus.test","password":"nope"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"error":"too many requests, try again later"}`, rr.Body.String())

	rr = ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code, "limiter only guards the auth routes")

	ts.assertExpectations(t)
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedCode    int
		expectedMessage string
	}{
		{name: "Invalid input", err: fmt.Errorf("op: %w", &apperrors.InvalidInputError{Reason: "message is required"}), expectedCode: http.StatusBadRequest, expectedMessage: "validation failed: message is required"},
		{name: "Bad body", err: fmt.Errorf("%w: eof", apperrors.ErrInvalidRequest), expectedCode: http.StatusBadRequest, expectedMessage: "invalid request body"},
		{name: "Transition", err: fmt.Errorf("op: %w", &apperrors.InvalidTransitionError{Reason: "interview request is not pending"}), expectedCode: http.StatusBadRequest, expectedMessage: "interview request is not pending"},
		{name: "Forbidden", err: &apperrors.ForbiddenError{Reason: "only the requester can cancel the interview"}, expectedCode: http.StatusForbidden, expectedMessage: "only the requester can cancel the interview"},
		{name: "Credentials", err: apperrors.ErrInvalidCredentials, expectedCode: http.StatusUnauthorized, expectedMessage: "invalid credentials"},
		{name: "Token", err: apperrors.ErrUnauthorized, expectedCode: http.StatusUnauthorized, expectedMessage: "invalid or expired token"},
		{name: "Not found", err: fmt.Errorf("op: %w", apperrors.ErrNotFound), expectedCode: http.StatusNotFound, expectedMessage: "resource not found"},
		{name: "Duplicate user", err: &apperrors.UserAlreadyExistsError{Email: "a@b.c"}, expectedCode: http.StatusConflict, expectedMessage: "user with this email or user id already exists"},
		{name: "Calendar not configured", err: apperrors.ErrCalendarNotAuthorized, expectedCode: http.StatusServiceUnavailable, expectedMessage: "google calendar integration is not configured"},
		{name: "Calendar remote", err: fmt.Errorf("exchange: %w", apperrors.ErrCalendarRemote), expectedCode: http.StatusBadGateway, expectedMessage: "google calendar request failed"},
		{name: "Unknown", err: assert.AnError, expectedCode: http.StatusInternalServerError, expectedMessage: "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, message := errorResponse(tc.err)

			assert.Equal(t, tc.expectedCode, code)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}
