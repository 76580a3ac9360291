package transport

import (
	"errors"
	"net/http"

	"product-catalog/internal/domain"
	"product-catalog/internal/middleware"

	"go.uber.org/zap"
)

// respondWithServiceError maps a service error onto the HTTP error contract.
// Client errors are logged at Debug; everything else at Error with a generic message.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fields ...zap.Field) {
	status, code, message := classify(err)

	fields = append(fields, zap.Error(err), zap.String("code", code))
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Debug("Request rejected", fields...)
	}

	middleware.RespondWithErrorCode(w, status, code, message, nil)
}

func classify(err error) (int, string, string) {
	var invalidSearch *domain.InvalidSearchParameterError
	var notDeleted *domain.ProductNotDeletedError

	switch {
	case errors.As(err, &invalidSearch):
		return http.StatusBadRequest, middleware.CodeInvalidSearchParameter, invalidSearch.Message
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, middleware.CodeValidationFailed, err.Error()
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, middleware.CodeProductNotFound, err.Error()
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, middleware.CodeCategoryNotFound, err.Error()
	case errors.Is(err, domain.ErrCategoryAlreadyExists):
		return http.StatusConflict, middleware.CodeCategoryAlreadyExists, err.Error()
	case errors.As(err, &notDeleted):
		return http.StatusInternalServerError, middleware.CodeProductDeletionFailed,
			"product with id " + notDeleted.ID.String() + " could not be deleted"
	default:
		return http.StatusInternalServerError, middleware.CodeDatabaseError, "an unexpected error occurred"
	}
}
