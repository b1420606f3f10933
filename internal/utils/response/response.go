package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shresthasriv/ecom-nexora/internal/errors"
)

// APIResponse is the envelope every endpoint answers with. Message is set on
// failures and on successful mutations.
type APIResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	SuccessWithMessage(w, statusCode, "", data)
}

func SuccessWithMessage(w http.ResponseWriter, statusCode int, message string, data any) {
	write(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, err error) {

	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.InternalError("An unexpected error occurred")
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" {
		body.Details = []string{appErr.Detail}
	}

	failure(w, appErr.StatusCode, body)
}

// ValidationError sends one message per failed field.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, describe(fe))
	}

	failure(w, http.StatusBadRequest, &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: details,
	})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", fe.Field())
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", fe.Field())
	case "uuid", "uuid4":
		return fmt.Sprintf("Field %s must be a valid item id", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("Field %s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Field %s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", fe.Field(), fe.Param())
	case "ne":
		return fmt.Sprintf("Field %s must not be %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field %s is invalid: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
}

func failure(w http.ResponseWriter, statusCode int, body *ErrorResponse) {
	write(w, statusCode, APIResponse{Success: false, Message: body.Message, Error: body})
}

func write(w http.ResponseWriter, statusCode int, resp APIResponse) {
	if err := WriteJson(w, statusCode, resp); err != nil {
		slog.Error("Failed to write response", slog.String("error", err.Error()))
	}
}
