package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/services"
	"github.com/yeremiapane/lunch-vote/utils"
)

var errInternal = errors.New("Internal server error")

// respondServiceError writes the HTTP form of an error returned by a service.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidation(c, verr.Fields)
	case errors.Is(err, services.ErrNoMenuForDate):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		_ = c.Error(err)
		utils.ErrorLogger.WithField("path", c.FullPath()).Errorf("unexpected error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondValidation(c, utils.BindErrors(err))
}
