package http

import "net/http"

func (s *Server) calendarConnect(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.calendarConnect"

	url, err := s.services.Calendar.ConnectURL(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"url": url})
}

// calendarCallback is reached by the browser redirect from Google, so the
// caller is identified by the signed state rather than a bearer token.
func (s *Server) calendarCallback(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.calendarCallback"

	q := r.URL.Query()

	if oauthErr := q.Get("error"); oauthErr != "" {
		s.respondError(w, http.StatusBadRequest, "google authorization failed: "+oauthErr)
		return
	}

	if err := s.services.Calendar.Callback(r.Context(), q.Get("code"), q.Get("state")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondMessage(w, http.StatusOK, "Google Calendar connected successfully")
}

func (s *Server) calendarStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.calendarStatus"

	status, err := s.services.Calendar.Status(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toCalendarStatus(status))
}
