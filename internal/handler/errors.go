package handler

import (
	"errors"
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/service"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "Internal server error"

// writeError maps a service error onto its HTTP status. Errors without a
// known kind are logged and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch {
		// conflicts answer 400, not 409; existing clients only branch on 400
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrUnauthorized):
			status = http.StatusUnauthorized
		}
		c.JSON(status, response.Error(status, svcErr.Message))
		return
	}

	_ = c.Error(err)
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, internalErrorMessage))
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
