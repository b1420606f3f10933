package testutils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// NewRequest builds a request carrying a discard logger and the given path values.
func NewRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// DecodeEnvelope unmarshals a response envelope. When data is non-nil the
// envelope's data field is decoded into it.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) response.APIResponse {
	t.Helper()

	var raw struct {
		response.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), "body: %s", rr.Body.String())

	if data != nil {
		require.NotEmpty(t, raw.Data, "response has no data")
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}

	return raw.APIResponse
}
