package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetdesk-backend/services"
	"vetdesk-backend/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation and not-found errors carry their detail through; anything
// unrecognized is reported opaquely.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[http] internal error: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
