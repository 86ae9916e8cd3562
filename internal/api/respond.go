package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net"
	"net/http"

	"screentime/internal/tracker"
)

type ErrorResponse struct {
	Error string `json:"error" example:"invalid username or password"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, tracker.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrInvalidCredentials), errors.Is(err, tracker.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, tracker.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error to its status. Internal errors are logged
// and their detail is kept from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorMessage(w, r, err, "")
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	status := errorStatus(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	if prefix != "" {
		if status == http.StatusInternalServerError {
			msg = prefix
		} else {
			msg = prefix + " " + msg
		}
	}

	writeJSON(w, status, ErrorResponse{Error: msg})
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// clientIP returns the host part of RemoteAddr, which RealIP may already
// have replaced with a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
