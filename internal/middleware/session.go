package middleware

import (
	"os"
	"strings"
	"time"

	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookieName = "health_assistant_session"
	// GlobalScopeID is shared by every caller when CHAT_SCOPE=global.
	GlobalScopeID = "global"
)

type ScopeMode string

const (
	ScopeModeSession ScopeMode = "session"
	ScopeModeGlobal  ScopeMode = "global"
)

func ScopeModeFromEnv() ScopeMode {
	if strings.EqualFold(os.Getenv("CHAT_SCOPE"), string(ScopeModeGlobal)) {
		return ScopeModeGlobal
	}
	return ScopeModeSession
}

type sessionMiddleware struct {
	utils utils.IUtils
	mode  ScopeMode
	ttl   time.Duration
}

func newSessionMiddleware(u utils.IUtils, mode ScopeMode) *sessionMiddleware {
	ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL"))
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &sessionMiddleware{
		utils: u,
		mode:  mode,
		ttl:   ttl,
	}
}

// NewSessionMiddleware resolves the conversation scope of the caller and stores
// it in Locals. Session mode issues a cookie on first contact and re-issues it
// on every request, so the cookie expiry slides with the history TTL.
func (m *middleware) NewSessionMiddleware() fiber.Handler {
	s := m.session

	return func(c *fiber.Ctx) error {
		if s.mode == ScopeModeGlobal {
			c.Locals(contextPkg.SessionIDKey, GlobalScopeID)
			return c.Next()
		}

		sessionID := c.Cookies(SessionCookieName)
		if sessionID == "" {
			sessionID = s.utils.NewSessionID()
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			Expires:  time.Now().Add(s.ttl),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		c.Locals(contextPkg.SessionIDKey, sessionID)
		return c.Next()
	}
}

func (m *middleware) GetSessionID(ctx *fiber.Ctx) string {
	sessionID, ok := ctx.Locals(contextPkg.SessionIDKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}
