package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Error codes carried in ErrorDetail.Code
const (
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
	CodeProductDeletionFailed  = "PRODUCT_DELETION_FAILED"
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
	CodeCategoryAlreadyExists  = "CATEGORY_ALREADY_EXISTS"
	CodeInvalidSearchParameter = "INVALID_SEARCH_PARAMETER"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeAccessDenied           = "ACCESS_DENIED"
	CodeRateLimited            = "RATE_LIMIT_EXCEEDED"
	CodeDatabaseError          = "DATABASE_ERROR"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// RespondWithError sends a structured error response with the default code for statusCode
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithErrorCode(w, statusCode, defaultCode(statusCode), message, nil)
}

// RespondWithErrorCode sends a structured error response with an explicit code and optional details
func RespondWithErrorCode(w http.ResponseWriter, statusCode int, code, message string, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	json.NewEncoder(w).Encode(response)
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	details := map[string]any{"validation_errors": errors}
	RespondWithErrorCode(w, http.StatusBadRequest, CodeValidationFailed, "validation failed", details)
}

func defaultCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusUnauthorized:
		return CodeInvalidToken
	case http.StatusForbidden:
		return CodeAccessDenied
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusInternalServerError:
		return CodeInternalError
	default:
		return http.StatusText(statusCode)
	}
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
