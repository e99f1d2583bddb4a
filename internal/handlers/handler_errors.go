package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadySold),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err. Internal failures are logged
// and their details withheld from the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: fallback, Code: apperrors.Code(err)})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: apperrors.Code(err)})
}

// respondBadRequest reports a request that failed binding.
func respondBadRequest(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request: " + err.Error(), Code: "VALIDATION"})
}

// callerID returns the authenticated company or aborts with 401.
func callerID(c *gin.Context) (string, bool) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
		return "", false
	}
	return companyID, true
}
