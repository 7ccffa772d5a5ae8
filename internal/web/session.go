package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmate/careers-service/internal/session"
)

const (
	// SessionCookie carries the visitor's session id.
	SessionCookie = "CAREERS_SESSION"
	// SessionHeader lets API clients without cookies pass the session id.
	SessionHeader = "X-Session-Id"

	sessionKey = "sessionID"
)

// sessionMiddleware resolves the session id from the header or cookie and
// issues a new one when neither holds a valid id.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	sid := c.GetHeader(SessionHeader)
	if !session.ValidID(sid) {
		sid, _ = c.Cookie(SessionCookie)
	}
	if !session.ValidID(sid) {
		sid = session.NewID()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sid, int(h.opts.SessionTTL.Seconds()), "/", "", false, true)
	c.Header(SessionHeader, sid)
	c.Set(sessionKey, sid)
	c.Next()
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
