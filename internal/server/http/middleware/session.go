package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/onboarding/internal/pkg/auth"
	"github.com/polkiloo/onboarding/internal/session"
)

const (
	// SessionContextKey is a gin context key for the current *session.Session.
	SessionContextKey = "session"
	sessionCookieName = "onboarding_session"
)

// SessionFacade issues and resolves session tokens.
type SessionFacade interface {
	IssueSessionToken(sid string) (string, error)
	ParseSessionToken(token string) (string, error)
	OpenSession(sid string) *session.Session
}

// SessionRequired binds every request to a session. A missing or invalid
// token starts a new session. The token is reissued on each request so the
// expiry slides with activity.
func SessionRequired(facade SessionFacade, secure bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string
		if token := extractToken(c); token != "" {
			parsed, err := facade.ParseSessionToken(token)
			if err == nil {
				sid = parsed
			}
		}
		if sid == "" {
			sid = pkgAuth.NewSessionID()
		}

		token, err := facade.IssueSessionToken(sid)
		if err != nil {
			logger.Error("failed to issue session token", slog.String("error", err.Error()))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		SetSessionCookie(c, token, secure)
		c.Set(SessionContextKey, facade.OpenSession(sid))
		c.Next()
	}
}

// CurrentSession returns the session bound by SessionRequired.
func CurrentSession(c *gin.Context) *session.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	s, _ := val.(*session.Session)
	return s
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session token as a browser-session cookie
// and echoes it for clients that keep it per tab.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, 0, "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}
