package http

import "net/http"

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.chatHistory"

	messages, err := s.services.Chat.History(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, messages)
}

func (s *Server) postChat(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postChat"

	var req postChatRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	msg, err := s.services.Chat.Post(r.Context(), identityFrom(r.Context()).Handle, req.Message)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, msg)
}
