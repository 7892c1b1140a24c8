package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/keystone-cre/leaseledger/internal/api/shared/errors"
	"github.com/keystone-cre/leaseledger/internal/logger"
)

// statusForCode maps API error codes to HTTP status codes
func statusForCode(code apierrors.ErrorCode) int {
	switch code {
	case apierrors.ErrCodeBadRequest, apierrors.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case apierrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apierrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apierrors.ErrCodeDuplicate,
		apierrors.ErrCodeReferenceInUse,
		apierrors.ErrCodeOverlapConflict,
		apierrors.ErrCodeVersionConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates an executor error into an HTTP response. Server
// errors are logged with the request path; client errors are the caller's
// problem and are returned without noise.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewInternalError("Internal server error")
	}
	status := statusForCode(apiErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error(err, zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, apiErr)
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(message))
}
