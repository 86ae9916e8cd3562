package api

import (
	"fmt"
	"net/http"

	"screentime/internal/models"
	"screentime/internal/tracker"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionResponse struct {
	models.Session
	Current bool `json:"current"`
}

type TerminateAllResponse struct {
	Terminated int64 `json:"terminated" example:"3"`
}

// @Summary      List active sessions
// @Description  Gets a list of all active sessions for the currently authenticated user, which can be displayed to allow them to manage devices.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   SessionResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	current := GetSessionFromContext(r.Context())

	sessions, err := s.service.ListSessions(r.Context(), current.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, SessionResponse{Session: session, Current: session.ID == current.ID})
	}

	writeJSON(w, http.StatusOK, resp)
}

// @Summary      Terminate a specific session
// @Description  Terminates (logs out) a specific session by its ID. A user can only terminate their own sessions.
// @Tags         sessions
// @Security     BearerAuth
// @Param        sessionId  path      string  true  "ID of the session to terminate" format(uuid)
// @Success      204        {null}    nil     "No Content"
// @Failure      400        {object}  ErrorResponse
// @Failure      401        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /sessions/{sessionId} [delete]
func (s *Server) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	current := GetSessionFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid session id format", tracker.ErrValidation))
		return
	}

	if err := s.service.TerminateSession(r.Context(), current.UserID, sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}

	if sessionID == current.ID {
		s.clearSessionCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Terminate all sessions (Log out everywhere)
// @Description  Terminates all active sessions for the currently authenticated user, including the calling one.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  TerminateAllResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /sessions/terminate_all [post]
func (s *Server) TerminateAllSessionsHandler(w http.ResponseWriter, r *http.Request) {
	current := GetSessionFromContext(r.Context())

	n, err := s.service.TerminateAllSessions(r.Context(), current.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, TerminateAllResponse{Terminated: n})
}
