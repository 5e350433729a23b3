package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tigerlife/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("missing user id"), http.StatusBadRequest, "VALIDATION"},
		{apperr.Unauthorized("not an admin"), http.StatusForbidden, "UNAUTHORIZED"},
		{apperr.Conflict("already a member"), http.StatusConflict, "CONFLICT"},
		{apperr.NotFound("organization not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperr.Remote(errors.New("timeout"), "failed to load"), http.StatusBadGateway, "REMOTE"},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rr)
		FromError(c, tc.err)

		assert.Equal(t, tc.status, rr.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.code, body["code"])
		assert.Equal(t, tc.err.Error(), body["error"])
	}
}

func TestFromError_InternalHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	cause := errors.New("crypto/bcrypt: hashedPassword is not the hash of the given password")
	FromError(c, cause)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rr.Body.String(), "bcrypt")

	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors.Last().Err, cause)
}

func TestSuccessWithWarnings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	SuccessWithWarnings(c, http.StatusCreated, gin.H{"id": 1}, []string{"image upload failed"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{"image upload failed"}, body["warnings"])

	rr = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rr)
	SuccessWithWarnings(c, http.StatusOK, gin.H{"id": 2}, nil)
	body = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	_, has := body["warnings"]
	assert.False(t, has)
}
