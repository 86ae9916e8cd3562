package api

import (
	"net/http"
	"net/url"
	"slices"

	"screentime/internal/websocket"
)

// @Summary      Dashboard event stream
// @Description  Upgrades to a websocket that receives screen_time_updated and sessions_terminated events. Browsers that cannot set headers pass the session token in the token query parameter.
// @Tags         dashboard
// @Security     BearerAuth
// @Param        token  query     string  false  "Session token"
// @Success      101    {string}  string "Switching Protocols"
// @Failure      401    {object}  ErrorResponse
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	token := s.sessionToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	session, _, err := s.service.ResolveSession(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	upgrader := websocket.Upgrader
	upgrader.CheckOrigin = s.checkOrigin
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, session.UserID)
	if !s.wsHub.Attach(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}

// checkOrigin admits same-host pages and the configured CORS origins, since
// the session cookie would otherwise authenticate any site's socket.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	allowed := s.config.CORS.AllowedOrigins
	if slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
