package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"screentime/internal/models"
	"screentime/internal/tracker"

	"github.com/go-chi/chi/v5"
)

const (
	updateSucceededMessage = "Screen time updated successfully!"
	updateFailedMessage    = "Failed to update screen time. Please try again."
)

type UpdateScreenTimeResponse struct {
	Message string       `json:"message" example:"Screen time updated successfully!"`
	User    *models.User `json:"user"`
}

// parseUpdateForm reads the update form. Plain urlencoded bodies are accepted
// when no screenshot is attached.
func (s *Server) parseUpdateForm(r *http.Request) (tracker.UpdateScreenTimeParams, func(), error) {
	var params tracker.UpdateScreenTimeParams
	cleanup := func() {}

	err := r.ParseMultipartForm(s.config.Upload.MaxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return params, cleanup, fmt.Errorf("upload exceeds %d bytes: %w", maxBytesErr.Limit, err)
		}
		return params, cleanup, fmt.Errorf("%w: malformed form body", tracker.ErrValidation)
	}
	if r.MultipartForm != nil {
		cleanup = func() { r.MultipartForm.RemoveAll() }
	}

	raw := strings.TrimSpace(r.FormValue("screen_time"))
	if raw == "" {
		return params, cleanup, fmt.Errorf("%w: screen_time is required", tracker.ErrValidation)
	}
	delta, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return params, cleanup, fmt.Errorf("%w: screen_time must be a number", tracker.ErrValidation)
	}
	params.DeltaMinutes = delta

	if r.MultipartForm == nil {
		return params, cleanup, nil
	}

	file, header, err := r.FormFile("screenshot")
	if errors.Is(err, http.ErrMissingFile) {
		return params, cleanup, nil
	}
	if err != nil {
		return params, cleanup, fmt.Errorf("%w: unreadable screenshot", tracker.ErrValidation)
	}
	cleanup = func() {
		file.Close()
		r.MultipartForm.RemoveAll()
	}
	params.Screenshot = &tracker.Screenshot{Filename: header.Filename, Content: file}

	return params, cleanup, nil
}

// @Summary      Report screen time
// @Description  Adds screen_time minutes to the signed-in user's total, optionally with a jpg, jpeg or png screenshot.
// @Tags         screen-time
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        screen_time  formData  number  true   "Minutes to add, from 0 to 527040"
// @Param        screenshot   formData  file    false  "Screenshot (jpg, jpeg, png)"
// @Success      200          {object}  UpdateScreenTimeResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  ErrorResponse
// @Failure      413          {object}  ErrorResponse
// @Failure      415          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /update_screen_time [post]
func (s *Server) UpdateScreenTimeHandler(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.config.Upload.MaxBytes
	if r.ContentLength > maxBytes {
		err := fmt.Errorf("upload exceeds %d bytes: %w", maxBytes, &http.MaxBytesError{Limit: maxBytes})
		s.writeErrorMessage(w, r, err, updateFailedMessage)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	params, cleanup, err := s.parseUpdateForm(r)
	defer cleanup()
	if err != nil {
		s.writeErrorMessage(w, r, err, updateFailedMessage)
		return
	}

	user, err := s.service.UpdateScreenTime(r.Context(), GetSessionFromContext(r.Context()), params)
	if err != nil {
		s.writeErrorMessage(w, r, err, updateFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, UpdateScreenTimeResponse{Message: updateSucceededMessage, User: user})
}

// @Summary      List screen-time updates
// @Description  Returns the signed-in user's updates with an id greater than since, oldest first.
// @Tags         screen-time
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     int  false  "The id of the last update already seen. Omit or use 0 for all."
// @Success      200    {array}   models.ScreenTimeUpdate
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /updates [get]
func (s *Server) ListUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}
	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: since must be a number", tracker.ErrValidation))
		return
	}

	updates, err := s.service.ListUpdates(r.Context(), user.ID, sinceID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if updates == nil {
		updates = []models.ScreenTimeUpdate{}
	}

	writeJSON(w, http.StatusOK, updates)
}

// @Summary      Download a screenshot
// @Description  Streams the screenshot attached to one of the signed-in user's updates.
// @Tags         screen-time
// @Produce      image/png
// @Produce      image/jpeg
// @Security     BearerAuth
// @Param        updateId  path      int  true  "Update id"
// @Success      200       {file}    file
// @Failure      400       {object}  ErrorResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /updates/{updateId}/screenshot [get]
func (s *Server) DownloadScreenshotHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	updateID, err := strconv.ParseInt(chi.URLParam(r, "updateId"), 10, 64)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid update id", tracker.ErrValidation))
		return
	}

	content, update, err := s.service.OpenScreenshot(r.Context(), user.ID, updateID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer content.Close()

	name := *update.ScreenshotName
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))

	if _, err := io.Copy(w, content); err != nil {
		s.logger.WarnContext(r.Context(), "screenshot download interrupted", "update_id", updateID, "error", err)
	}
}
