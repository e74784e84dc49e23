//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PerformRequest executes an HTTP request against the router with an
// optional bearer token.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequestWithHeaders(t, router, method, path, body, authToken, nil)
}

// PerformRequestWithHeaders adds arbitrary headers, used mostly to carry
// the Idempotency-Key on reservation creation.
func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, authToken string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "failed to encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExtractCookie returns the named cookie from the response, or nil.
func ExtractCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// DecodeResponseBody decodes the JSON response body into target.
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(target), "failed to decode response body")
}
