package http

import (
	"context"
	"net/http"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) createInterview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createInterview"

	var req createInterviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	created, err := s.services.Interviews.Create(r.Context(), identityFrom(r.Context()).UserID, service.CreateInterviewInput{
		Role:          domain.Role(req.Role),
		InterviewType: domain.InterviewType(req.InterviewType),
		PreferredDate: req.PreferredDate,
		Duration:      req.Duration,
		Notes:         req.Notes,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toInterviewRecord(created))
}

func (s *Server) myInterviews(w http.ResponseWriter, r *http.Request) {
	s.listInterviews(w, r, "internal.transport.http.myInterviews", s.services.Interviews.Mine)
}

func (s *Server) availableInterviews(w http.ResponseWriter, r *http.Request) {
	s.listInterviews(w, r, "internal.transport.http.availableInterviews", s.services.Interviews.Available)
}

func (s *Server) interviewHistory(w http.ResponseWriter, r *http.Request) {
	s.listInterviews(w, r, "internal.transport.http.interviewHistory", s.services.Interviews.History)
}

func (s *Server) listInterviews(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	query func(ctx context.Context, userID string) ([]domain.InterviewRequestView, error),
) {
	views, err := query(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toInterviewViews(views))
}

func (s *Server) getInterview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getInterview"

	view, err := s.services.Interviews.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toInterviewView(view))
}

func (s *Server) acceptInterview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.acceptInterview"

	updated, err := s.services.Interviews.Accept(r.Context(), chi.URLParam(r, "id"), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toInterviewRecord(updated))
}

func (s *Server) completeInterview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.completeInterview"

	var req completeInterviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	updated, err := s.services.Interviews.Complete(
		r.Context(), chi.URLParam(r, "id"), identityFrom(r.Context()).UserID, req.Feedback, req.Rating,
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toInterviewRecord(updated))
}

func (s *Server) cancelInterview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.cancelInterview"

	updated, err := s.services.Interviews.Cancel(r.Context(), chi.URLParam(r, "id"), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toInterviewRecord(updated))
}
