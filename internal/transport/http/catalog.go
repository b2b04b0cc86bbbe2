package http

import (
	"net/http"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listQuestions"

	q := r.URL.Query()

	questions, err := s.services.Questions.List(r.Context(), domain.QuestionFilter{
		Company:    q.Get("company"),
		Role:       q.Get("role"),
		Difficulty: q.Get("difficulty"),
		Frequency:  q.Get("frequency"),
		SortBy:     domain.QuestionSort(q.Get("sortBy")),
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toQuestionResponses(questions))
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createQuestion"

	var req createQuestionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	created, err := s.services.Questions.Create(r.Context(), identityFrom(r.Context()).Handle, service.QuestionInput{
		Company:        req.Company,
		Role:           req.Role,
		Question:       req.Question,
		Round:          req.Round,
		Difficulty:     req.Difficulty,
		Frequency:      req.Frequency,
		FrequencyCount: req.FrequencyCount,
		PostedBy:       req.PostedBy,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toQuestionResponse(created))
}

func (s *Server) likeQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.likeQuestion"

	q, err := s.services.Questions.Like(r.Context(), identityFrom(r.Context()).UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toQuestionResponse(q))
}

func (s *Server) viewQuestion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.viewQuestion"

	q, err := s.services.Questions.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toQuestionResponse(q))
}

func (s *Server) listStudyMaterials(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listStudyMaterials"

	materials, err := s.services.Materials.List(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	out := make([]studyMaterialResponse, len(materials))
	for i := range materials {
		out[i] = toStudyMaterialResponse(&materials[i])
	}

	s.respond(w, http.StatusOK, out)
}

func (s *Server) createStudyMaterial(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createStudyMaterial"

	var req createStudyMaterialRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	created, err := s.services.Materials.Create(r.Context(), identityFrom(r.Context()).UserID, service.StudyMaterialInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Link:        req.Link,
		FileType:    req.FileType,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toStudyMaterialResponse(created))
}
