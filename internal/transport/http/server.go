// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/auth"
	"github.com/YusovID/campus-prep/internal/service"
	"github.com/YusovID/campus-prep/internal/validation"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/YusovID/campus-prep/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TokenVerifier resolves a bearer token to the caller's identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth       service.AuthService
	Interviews service.InterviewService
	Profiles   service.ProfileService
	Questions  service.QuestionService
	Materials  service.StudyMaterialService
	Chat       service.ChatService
	Calendar   service.CalendarService
}

type Options struct {
	CORSOrigins   []string
	RatePerMinute int
	RateBurst     int
	// RateTTL is how long an idle client keeps its rate limit bucket.
	RateTTL time.Duration
}

const (
	defaultRateTTL   = 10 * time.Minute
	maxSweepInterval = time.Minute
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log        *slog.Logger
	services   Services
	tokens     TokenVerifier
	chatStream http.Handler
	limiter    *ipLimiter
	opts       Options
}

// NewServer creates a new instance of the HTTP server. chatStream serves the
// websocket feed and may be nil. Close stops the background limiter sweep.
func NewServer(
	log *slog.Logger,
	services Services,
	tokens TokenVerifier,
	chatStream http.Handler,
	opts Options,
) *Server {
	if opts.RateTTL <= 0 {
		opts.RateTTL = defaultRateTTL
	}

	limiter := newIPLimiter(opts.RatePerMinute, opts.RateBurst, opts.RateTTL)
	go limiter.run(min(opts.RateTTL, maxSweepInterval))

	return &Server{
		log:        log,
		services:   services,
		tokens:     tokens,
		chatStream: chatStream,
		limiter:    limiter,
		opts:       opts,
	}
}

func (s *Server) Close() {
	s.limiter.close()
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/healthz", s.health)

	if s.chatStream != nil {
		mux.Handle("/ws/chat", s.chatStream)
	}

	mux.Route("/auth/google", func(r chi.Router) {
		r.With(s.authenticate).Get("/", s.calendarConnect)
		r.Get("/callback", s.calendarCallback)
	})

	mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/signup", s.signup)
			r.Post("/login", s.login)
		})

		r.Get("/questions", s.listQuestions)
		r.Put("/questions/{id}/view", s.viewQuestion)
		r.Get("/study-materials", s.listStudyMaterials)
		r.Get("/chat", s.chatHistory)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/questions", s.createQuestion)
			r.Put("/questions/{id}/like", s.likeQuestion)
			r.Post("/study-materials", s.createStudyMaterial)
			r.Post("/chat", s.postChat)
			r.Get("/google-calendar/status", s.calendarStatus)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", s.getProfile)
				r.Get("/liked-questions", s.likedQuestions)
				r.Get("/study-materials", s.profileMaterials)
				r.Post("/study-materials", s.addProfileMaterial)
				r.Delete("/study-materials/{materialId}", s.removeProfileMaterial)
			})

			r.Route("/interview-requests", func(r chi.Router) {
				r.Post("/", s.createInterview)
				r.Get("/my-requests", s.myInterviews)
				r.Get("/available", s.availableInterviews)
				r.Get("/history", s.interviewHistory)
				r.Get("/{id}", s.getInterview)
				r.Put("/{id}/accept", s.acceptInterview)
				r.Put("/{id}/complete", s.completeInterview)
				r.Put("/{id}/cancel", s.cancelInterview)
			})
		})
	})

	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

func (s *Server) respondMessage(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"message": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v any) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code, message := errorResponse(err)

	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
		slog.Int("status", code),
	)

	if code >= http.StatusInternalServerError {
		log.Error("service error occurred", sl.Err(err))
	} else {
		log.Info("request rejected", sl.Err(err))
	}

	s.respondError(w, code, message)
}

func errorResponse(err error) (int, string) {
	var (
		validationErr *validation.ValidationError
		inputErr      *apperrors.InvalidInputError
		transitionErr *apperrors.InvalidTransitionError
		forbiddenErr  *apperrors.ForbiddenError
		userExistsErr *apperrors.UserAlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, fmt.Sprintf("%s: %s", apperrors.ErrValidation, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request body"
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Error()
	case errors.As(err, &transitionErr):
		return http.StatusBadRequest, transitionErr.Reason
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden, forbiddenErr.Reason
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.As(err, &userExistsErr):
		return http.StatusConflict, "user with this email or user id already exists"
	case errors.Is(err, apperrors.ErrCalendarNotAuthorized):
		return http.StatusServiceUnavailable, "google calendar integration is not configured"
	case errors.Is(err, apperrors.ErrCalendarRemote):
		return http.StatusBadGateway, "google calendar request failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
