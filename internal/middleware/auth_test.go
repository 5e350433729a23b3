package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerlife/internal/pkg/jwt"
)

type fakeSessions struct {
	active map[string]bool
	err    error
}

func (f fakeSessions) Active(_ context.Context, id string, _ time.Time) (bool, error) {
	return f.active[id], f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(t *testing.T, tokens *jwt.Service, sessions SessionChecker) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(JWTAuth(tokens, sessions))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetInt64("user_id"),
			"session_id": c.GetString("session_id"),
			"is_admin":   c.GetBool("is_admin"),
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tokens := jwt.New("test-secret-123", time.Hour)
	token, err := tokens.GenerateToken(42, "sess-1", true)
	require.NoError(t, err)
	router := newProtectedRouter(t, tokens, fakeSessions{active: map[string]bool{"sess-1": true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"session_id":"sess-1","is_admin":true}`, w.Body.String())
}

func TestJWTAuth_EndedSessionIsRejected(t *testing.T) {
	tokens := jwt.New("test-secret-123", time.Hour)
	token, _ := tokens.GenerateToken(42, "sess-gone", false)
	router := newProtectedRouter(t, tokens, fakeSessions{active: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestJWTAuth_SessionLookupFailure(t *testing.T) {
	tokens := jwt.New("test-secret-123", time.Hour)
	token, _ := tokens.GenerateToken(42, "sess-1", false)
	router := newProtectedRouter(t, tokens, fakeSessions{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := newProtectedRouter(t, jwt.New("wrong-secret", time.Hour), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := newProtectedRouter(t, jwt.New("secret", time.Hour), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	router := newProtectedRouter(t, jwt.New("secret", time.Hour), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTAuth_QueryTokenOnlyForWebsocket(t *testing.T) {
	tokens := jwt.New("secret", time.Hour)
	token, _ := tokens.GenerateToken(7, "sess-ws", false)
	router := newProtectedRouter(t, tokens, fakeSessions{active: map[string]bool{"sess-ws": true}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery_WritesEnvelope(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(nil))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error","code":"INTERNAL"}`, w.Body.String())
}

func TestCORS_ReflectsConfiguredOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://tigerlife.edu"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://tigerlife.edu")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://tigerlife.edu", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
