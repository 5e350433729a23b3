package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FunctionError is returned when a function answers with an error status.
type FunctionError struct {
	Name       string
	StatusCode int
	Body       string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function %s failed with status %d: %s", e.Name, e.StatusCode, e.Body)
}

// IsRejected reports whether err is a 4xx answer from a function, i.e. the
// function understood the request and refused it.
func IsRejected(err error) bool {
	var fe *FunctionError
	return errors.As(err, &fe) && fe.StatusCode >= 400 && fe.StatusCode < 500
}

// HTTPFunctions invokes edge functions at <baseURL>/functions/v1/<name>.
type HTTPFunctions struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPFunctions(baseURL, apiKey string, timeout time.Duration) *HTTPFunctions {
	if baseURL != "" && !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFunctions{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFunctions) Invoke(ctx context.Context, name string, payload any, out any) error {
	if f.baseURL == "" {
		return fmt.Errorf("function %s: functions endpoint is not configured", name)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("function %s: marshal payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/functions/v1/"+name, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("function %s: build request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		req.Header.Set("apikey", f.apiKey)
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("function %s: read response: %w", name, err)
	}

	if resp.StatusCode >= 400 {
		return &FunctionError{Name: name, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("function %s: decode response: %w", name, err)
	}
	return nil
}
