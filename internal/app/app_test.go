package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerlife/internal/config"
	"tigerlife/internal/database"
	"tigerlife/internal/storage"
)

type noFunctions struct{}

func (noFunctions) Invoke(context.Context, string, any, any) error { return nil }

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
	Code     string          `json:"code"`
	Warnings []string        `json:"warnings"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func (a apiClient) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a apiClient) signupAndLogin(first, email, gNumber string) (int64, string) {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"first_name": first,
		"last_name":  "Tiger",
		"email":      email,
		"password":   "password123",
		"g_number":   gNumber,
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	var u struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &u))

	code, env = a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &login))
	return u.ID, login.Token
}

func newTestApp(t *testing.T) apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	dir := t.TempDir()
	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
		Storage:   config.StorageConfig{Driver: config.StorageDisk, Dir: dir, PublicURL: "/static/uploads"},
		Polling: config.PollingConfig{
			UnreadCount:   time.Second,
			Messages:      time.Second,
			Conversations: time.Second,
			Notifications: time.Second,
		},
	}
	a := New(cfg, Deps{
		DB:        db,
		Store:     storage.NewDiskStore(dir, "/static/uploads"),
		Functions: noFunctions{},
	}, nil)
	t.Cleanup(a.Hub.Close)
	return apiClient{t: t, router: a.Router}
}

func TestAPI_PublicRoutesNeedNoToken(t *testing.T) {
	api := newTestApp(t)

	for _, path := range []string{"/api/v1/marketplace", "/api/v1/services", "/api/v1/events", "/api/v1/organizations"} {
		code, env := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, code, path)
		assert.True(t, env.Success, path)
		assert.JSONEq(t, `[]`, string(env.Data), path)
	}

	code, env := api.do(http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Code)
}

func TestAPI_SignupRejectsDuplicateEmail(t *testing.T) {
	api := newTestApp(t)
	api.signupAndLogin("Ada", "ada@campus.edu", "G00000001")

	code, env := api.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"first_name": "Ada",
		"last_name":  "Again",
		"email":      "ADA@campus.edu",
		"password":   "password123",
		"g_number":   "G00000002",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Code)

	code, env = api.do(http.MethodGet, "/api/v1/auth/user-exists?g_number=G00000001", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"exists":true}`, string(env.Data))
}

func TestAPI_MessageFlowNotifiesReceiver(t *testing.T) {
	api := newTestApp(t)
	adaID, adaToken := api.signupAndLogin("Ada", "ada@campus.edu", "G00000001")
	bobID, bobToken := api.signupAndLogin("Bob", "bob@campus.edu", "G00000002")

	code, env := api.do(http.MethodPost, "/api/v1/messages", adaToken, gin.H{"receiver_id": bobID, "content": "hi Bob"})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = api.do(http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"unread_count":1}`, string(env.Data))

	code, env = api.do(http.MethodGet, "/api/v1/messages/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var convs []struct {
		Partner struct {
			ID int64 `json:"id"`
		} `json:"partner"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, adaID, convs[0].Partner.ID)

	code, _ = api.do(http.MethodPost, "/api/v1/messages", adaToken, gin.H{"receiver_id": adaID, "content": "me"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_UnverifiedOrganizationCannotCreateEvents(t *testing.T) {
	api := newTestApp(t)
	_, token := api.signupAndLogin("Ada", "ada@campus.edu", "G00000001")

	code, env := api.do(http.MethodPost, "/api/v1/organizations", token, gin.H{"name": "Chess Club", "type": "general"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var org struct {
		ID       int64 `json:"id"`
		Verified bool  `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &org))
	assert.False(t, org.Verified)

	code, env = api.do(http.MethodPost, "/api/v1/events", token, gin.H{
		"title":           "Open night",
		"date":            time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"organization_id": org.ID,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestAPI_LogoutEndsSession(t *testing.T) {
	api := newTestApp(t)
	_, token := api.signupAndLogin("Ada", "ada@campus.edu", "G00000001")

	code, _ := api.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := api.do(http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "SESSION_EXPIRED", env.Code)
}
