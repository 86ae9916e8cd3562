package api

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"screentime/internal/models"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	sessionContextKey = contextKey("session")
	userContextKey    = contextKey("user")
)

// sessionToken reads the bearer token, falling back to the session cookie.
func (s *Server) sessionToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) == 2 && headerParts[0] == "Bearer" {
			return headerParts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(s.config.Session.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, user, err := s.service.ResolveSession(r.Context(), s.sessionToken(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		ctx = context.WithValue(ctx, userContextKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TrustedRealIP applies chi's RealIP only when the connection comes from a
// configured proxy. Anyone else could pick their own address by header and
// dodge the per-IP rate limit.
func (s *Server) TrustedRealIP(next http.Handler) http.Handler {
	realIP := middleware.RealIP(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.fromTrustedProxy(r) {
			realIP.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) fromTrustedProxy(r *http.Request) bool {
	if len(s.proxies) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range s.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// SameSiteOnly refuses requests a browser marks as cross-site. Lax cookies
// still ride along on cross-site top-level GETs, so state-changing GET
// routes need this check.
func SameSiteOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Sec-Fetch-Site") == "cross-site" {
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "cross-site request refused, use POST /logout"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "Rate limit exceeded. Please try again later."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetSessionFromContext(ctx context.Context) *models.Session {
	if session, ok := ctx.Value(sessionContextKey).(*models.Session); ok {
		return session
	}
	return nil
}

func GetUserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

