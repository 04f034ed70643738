package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the conversation id
const SessionCookie = "agribot_session"

const sessionKey = "session_id"

// Session assigns every client a conversation id. Missing or malformed
// cookies get a fresh UUID.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)

	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", secure, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the conversation id set by Session
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
