package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
)

const maxBodyBytes = 1 << 20

func DecodeJSONBody(r *http.Request, dest any) error {

	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if len(body) > maxBodyBytes {
		return errors.New("request body is too large")
	}

	if len(body) == 0 {
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ParseID reads a UUID path value.
func ParseID(r *http.Request, key string) (uuid.UUID, error) {

	raw := r.PathValue(key)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.AddValidationError(key, "must be a valid UUID").WithError(err)
	}

	return id, nil
}

// ParseInt64 reads a positive integer path value.
func ParseInt64(r *http.Request, key string) (int64, error) {

	raw := r.PathValue(key)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.AddValidationError(key, "must be a positive integer")
	}

	return id, nil
}
