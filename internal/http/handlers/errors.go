package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dataarena/dataarena-backend/internal/http/response"
	"github.com/dataarena/dataarena-backend/internal/services"
)

// respondServiceError maps service-layer errors onto the API error envelope.
func respondServiceError(c *gin.Context, fallbackCode string, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		response.RespondError(c, http.StatusBadRequest, ve.Code, err)
	case errors.Is(err, services.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, services.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrStorageFailure):
		response.RespondError(c, http.StatusInternalServerError, "storage_failure", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, fallbackCode, err)
	}
}
