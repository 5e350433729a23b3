package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tigerlife/internal/pkg/jwt"
	"tigerlife/internal/pkg/response"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// SessionChecker is implemented by *repository.SessionRepository.
type SessionChecker interface {
	Active(ctx context.Context, id string, now time.Time) (bool, error)
}

// JWTAuth accepts "Authorization: Bearer <token>". Websocket upgrades may
// pass the token as ?token= instead since browsers cannot set the header.
// The session named in the token must still exist.
func JWTAuth(tokens TokenValidator, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code, msg := bearerToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		if sessions != nil {
			ok, err := sessions.Active(c.Request.Context(), claims.SessionID, time.Now())
			if err != nil {
				response.Error(c, http.StatusBadGateway, "REMOTE", "Failed to check session")
				c.Abort()
				return
			}
			if !ok {
				response.Error(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session has ended, please log in again")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token, code, msg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if isWebsocketUpgrade(c.Request) {
			if t := c.Query("token"); t != "" {
				return t, "", ""
			}
		}
		return "", "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}
	return strings.TrimSpace(parts[1]), "", ""
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
