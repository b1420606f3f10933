package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
	"github.com/shresthasriv/ecom-nexora/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name         string
		body         string
		expectedOK   bool
		expectedCode string
	}{
		{name: "Success", body: `{"name":"Ada","email":"ada@example.com"}`, expectedOK: true},
		{name: "Empty body", body: ``, expectedCode: "BAD_REQUEST"},
		{name: "Malformed JSON", body: `{"name":`, expectedCode: "BAD_REQUEST"},
		{name: "Invalid email", body: `{"name":"Ada","email":"nope"}`, expectedCode: "VALIDATION_ERROR"},
		{name: "Missing name", body: `{"email":"ada@example.com"}`, expectedCode: "VALIDATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			var dest samplePayload

			// Act
			ok := utils.ParseAndValidate(req, rr, &dest, validate)

			// Assert
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, "Ada", dest.Name)
				return
			}

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp response.APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.expectedCode, resp.Error.Code)
		})
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", utils.SanitizeText("  <b>Ada</b> Lovelace<script>alert(1)</script> "))
	assert.Equal(t, "plain", utils.SanitizeText("plain"))
	assert.Equal(t, "O'Brien & Sons", utils.SanitizeText("O'Brien & Sons"))
}

func TestParseID(t *testing.T) {
	t.Run("Valid UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.SetPathValue("itemId", "5b2c8f1e-3f4a-4c55-9b3d-2a1f0e9d8c7b")

		id, err := utils.ParseID(req, "itemId")

		require.NoError(t, err)
		assert.Equal(t, "5b2c8f1e-3f4a-4c55-9b3d-2a1f0e9d8c7b", id.String())
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.SetPathValue("itemId", "42")

		_, err := utils.ParseID(req, "itemId")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "itemId")
	})
}

func TestParseInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	for raw, ok := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false} {
		req.SetPathValue("id", raw)

		id, err := utils.ParseInt64(req, "id")

		if ok {
			require.NoError(t, err)
			assert.Equal(t, int64(7), id)
		} else {
			assert.Error(t, err, raw)
		}
	}
}

func TestValidationMessagesUseJSONNames(t *testing.T) {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"nope"}`))
	rr := httptest.NewRecorder()

	var dest samplePayload

	// Act
	ok := utils.ParseAndValidate(req, rr, &dest, utils.NewValidator())

	// Assert
	require.False(t, ok)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, []string{"Field email must be a valid email address"}, resp.Error.Details)
}
