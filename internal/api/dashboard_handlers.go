package api

import (
	"net/http"

	"screentime/internal/models"
	"screentime/internal/tracker"
)

type DashboardResponse struct {
	CurrentUser *models.User   `json:"current_user"`
	Users       []models.User  `json:"users"`
	UpdateForm  FormDescriptor `json:"update_form"`
}

var (
	minScreenTime = 0
	maxScreenTime = tracker.MaxDeltaMinutes
)

var updateForm = FormDescriptor{
	Form:   "update_screen_time",
	Action: "/update_screen_time",
	Fields: []FormField{
		{Name: "screen_time", Type: "number", Label: "Screen Time (minutes)", Required: true, Min: &minScreenTime, Max: &maxScreenTime},
		{Name: "screenshot", Type: "file", Label: "Screenshot", Accept: ".jpg,.jpeg,.png"},
	},
}

// @Summary      Dashboard
// @Description  Returns the signed-in user and every user's screen-time total.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DashboardResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard [get]
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.service.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		CurrentUser: GetUserFromContext(r.Context()),
		Users:       users,
		UpdateForm:  updateForm,
	})
}
