package api

import (
	"net/http"
	"time"

	"screentime/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.TrustedRealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Get("/login", s.LoginFormHandler)
	r.Get("/signup", s.SignupFormHandler)
	r.Group(func(r chi.Router) {
		r.Use(s.RateLimitMiddleware)
		r.Post("/login", s.LoginHandler)
		r.Post("/signup", s.SignupHandler)
	})

	r.Get("/ws", s.ServeWsHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.With(SameSiteOnly).Get("/logout", s.LogoutHandler)
		r.Post("/logout", s.LogoutHandler)
		r.Get("/dashboard", s.DashboardHandler)
		r.With(middleware.Timeout(time.Minute)).Post("/update_screen_time", s.UpdateScreenTimeHandler)
		r.Get("/updates", s.ListUpdatesHandler)
		r.Get("/updates/{updateId}/screenshot", s.DownloadScreenshotHandler)
		r.Get("/sessions", s.ListSessionsHandler)
		r.Delete("/sessions/{sessionId}", s.DeleteSessionHandler)
		r.Post("/sessions/terminate_all", s.TerminateAllSessionsHandler)
	})

	return r
}
