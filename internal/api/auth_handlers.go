package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"screentime/internal/auth"
	"screentime/internal/models"
	"screentime/internal/tracker"
)

type CredentialsRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

type LoginResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *models.User `json:"user"`
}

type SignupResponse struct {
	User *models.User `json:"user"`
}

type FormField struct {
	Name      string `json:"name" example:"username"`
	Type      string `json:"type" example:"text"`
	Label     string `json:"label" example:"Username"`
	Required  bool   `json:"required"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Min       *int   `json:"min,omitempty"`
	Max       *int   `json:"max,omitempty"`
	Accept    string `json:"accept,omitempty"`
}

// FormDescriptor tells a client which fields a form endpoint consumes.
type FormDescriptor struct {
	Form   string      `json:"form" example:"login"`
	Action string      `json:"action" example:"/login"`
	Fields []FormField `json:"fields"`
}

var (
	loginForm = FormDescriptor{
		Form:   "login",
		Action: "/login",
		Fields: []FormField{
			{Name: "username", Type: "text", Label: "Username", Required: true},
			{Name: "password", Type: "password", Label: "Password", Required: true},
		},
	}
	signupForm = FormDescriptor{
		Form:   "signup",
		Action: "/signup",
		Fields: []FormField{
			{Name: "username", Type: "text", Label: "Username", Required: true, MinLength: auth.MinCredentialLen, MaxLength: auth.MaxCredentialLen},
			{Name: "password", Type: "password", Label: "Password", Required: true, MinLength: auth.MinCredentialLen, MaxLength: auth.MaxCredentialLen},
		},
	}
)

// readCredentials accepts a JSON body or an urlencoded/multipart form.
func readCredentials(r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: invalid request body", tracker.ErrValidation)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: invalid form body", tracker.ErrValidation)
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.config.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// @Summary      Describe the login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  FormDescriptor
// @Router       /login [get]
func (s *Server) LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, loginForm)
}

// @Summary      Describe the signup form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  FormDescriptor
// @Router       /signup [get]
func (s *Server) SignupFormHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, signupForm)
}

// @Summary      Logs a user in
// @Description  Verifies the credentials and opens a session. The session token is set as a cookie and, for JSON requests, also returned in the body. Form posts are redirected to the dashboard.
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        credentials  body      CredentialsRequest  true  "Login credentials"
// @Success      200          {object}  LoginResponse
// @Success      303          {string}  string "Redirect to /dashboard"
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  ErrorResponse
// @Failure      429          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.service.Authenticate(r.Context(), tracker.AuthenticateParams{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
		ClientIP:  clientIP(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setSessionCookie(w, res.Token, res.Session.ExpiresAt)

	if !isJSONRequest(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: res.Token, User: res.User})
}

// @Summary      Creates an account
// @Description  Registers a new user with a zero screen-time total. Form posts are redirected to the login page.
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        credentials  body      CredentialsRequest  true  "New account credentials"
// @Success      201          {object}  SignupResponse
// @Success      303          {string}  string "Redirect to /login"
// @Failure      400          {object}  ErrorResponse
// @Failure      409          {object}  ErrorResponse
// @Failure      429          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /signup [post]
func (s *Server) SignupHandler(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !isJSONRequest(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, SignupResponse{User: user})
}

// @Summary      Logs the current session out
// @Description  Form clients should POST. GET is kept for links and is refused when the browser marks it cross-site.
// @Tags         auth
// @Security     BearerAuth
// @Success      303  {string}  string "Redirect to /login"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /logout [get]
// @Router       /logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Logout(r.Context(), GetSessionFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
