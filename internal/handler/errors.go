package handler

import (
	"errors"
	"net/http"

	"accounting/internal/logger"
	"accounting/internal/middleware"
	"accounting/internal/service"
	"accounting/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps a service error kind onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStateConflict):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err in the standard envelope. Infrastructure failures are
// logged and answered with a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log := logger.WithComponent("handler")
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		_ = c.Error(err)
		c.JSON(status, response.Error(status, "Internal server error"))
		return
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// actorFrom builds the acting user from the values RequireRole placed on the context
func actorFrom(c *gin.Context) (service.Actor, bool) {
	rawID, _ := c.Get(middleware.ContextUserID)
	idStr, _ := rawID.(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid user identity in token"))
		return service.Actor{}, false
	}

	role := c.GetString(middleware.ContextUserRole)
	return service.Actor{UserID: userID, Role: role}, true
}
