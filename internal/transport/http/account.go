package http

import (
	"net/http"

	"github.com/YusovID/campus-prep/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.signup"

	var req signupRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.services.Auth.Signup(r.Context(), service.SignupInput{
		Handle:      req.UserID,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		College:     req.College,
		Branch:      req.Branch,
		YearOfStudy: req.YearOfStudy,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserResponse(user),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.login"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	session, err := s.services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, loginResponse{
		Token: session.Token,
		User:  toUserResponse(session.User),
	})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getProfile"

	profile, err := s.services.Profiles.Get(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, profileResponse{
		userResponse:   toUserResponse(&profile.User),
		LikedQuestions: toQuestionResponses(profile.LikedQuestions),
		StudyMaterials: toProfileMaterialResponses(profile.StudyMaterials),
	})
}

func (s *Server) likedQuestions(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.likedQuestions"

	liked, err := s.services.Profiles.LikedQuestions(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toQuestionResponses(liked))
}

func (s *Server) profileMaterials(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.profileMaterials"

	materials, err := s.services.Profiles.Materials(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toProfileMaterialResponses(materials))
}

func (s *Server) addProfileMaterial(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.addProfileMaterial"

	var req addProfileMaterialRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	added, err := s.services.Profiles.AddMaterial(r.Context(), identityFrom(r.Context()).UserID, service.ProfileMaterialInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, toProfileMaterialResponse(added))
}

func (s *Server) removeProfileMaterial(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.removeProfileMaterial"

	err := s.services.Profiles.RemoveMaterial(r.Context(), identityFrom(r.Context()).UserID, chi.URLParam(r, "materialId"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondMessage(w, http.StatusOK, "Study material removed successfully")
}
