package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInsertResult_Shapes(t *testing.T) {
	obj, err := DecodeInsertResult([]byte(`{"id": 7, "title": "lamp"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), obj.ID)

	arr, err := DecodeInsertResult([]byte(` [{"id": 9}, {"id": 10}]`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), arr.ID)
}

func TestDecodeInsertResult_Empty(t *testing.T) {
	for _, raw := range []string{``, `[]`, `{}`, `null`} {
		_, err := DecodeInsertResult([]byte(raw))
		assert.ErrorIs(t, err, ErrEmptyInsertResponse, raw)
	}
}

func TestHTTPFunctions_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/v1/create-payment-intent", r.URL.Path)
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, float64(1250), in["amount"])

		_, _ = w.Write([]byte(`{"client_secret": "pi_secret", "id": "pi_1"}`))
	}))
	defer srv.Close()

	fns := NewHTTPFunctions(srv.URL, "anon-key", time.Second)

	var out struct {
		ClientSecret string `json:"client_secret"`
		ID           string `json:"id"`
	}
	err := fns.Invoke(context.Background(), FnCreatePaymentIntent, map[string]any{"amount": 1250}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", out.ClientSecret)
	assert.Equal(t, "pi_1", out.ID)
}

func TestHTTPFunctions_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad image", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewHTTPFunctions(srv.URL, "", time.Second).Invoke(context.Background(), FnExtractIDText, map[string]any{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.True(t, IsRejected(err))
}

func TestIsRejected(t *testing.T) {
	assert.True(t, IsRejected(fmt.Errorf("wrapped: %w", &FunctionError{Name: "x", StatusCode: http.StatusNotFound})))
	assert.False(t, IsRejected(&FunctionError{Name: "x", StatusCode: http.StatusBadGateway}))
	assert.False(t, IsRejected(errors.New("connection refused")))
	assert.False(t, IsRejected(nil))
}

func TestHTTPFunctions_NotConfigured(t *testing.T) {
	err := NewHTTPFunctions("", "", 0).Invoke(context.Background(), FnProcessSellerPayout, nil, nil)
	assert.Error(t, err)
}
