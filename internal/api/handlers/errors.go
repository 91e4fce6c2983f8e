package handlers

import (
	"errors"
	"net/http"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/model"

	"github.com/gin-gonic/gin"
)

// Error codes returned in ErrorDetail.Code.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeForecastUnavailable = "FORECAST_UNAVAILABLE"
	CodeForecastShape       = "FORECAST_SHAPE"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
)

// errorDetail maps an error to its HTTP status and response body.
func errorDetail(err error) (int, models.ErrorDetail) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch model.KindOf(err) {
	case model.ErrInputFormat:
		status, code = http.StatusBadRequest, CodeInvalidInput
	case model.ErrCollaboratorUnavailable:
		status, code = http.StatusServiceUnavailable, CodeForecastUnavailable
	case model.ErrForecastShape:
		status, code = http.StatusUnprocessableEntity, CodeForecastShape
	case model.ErrValidation:
		status, code = http.StatusUnprocessableEntity, CodeValidationFailed
	}

	detail := models.ErrorDetail{Code: code, Message: err.Error()}
	var me *model.Error
	if errors.As(err, &me) {
		detail.Message = me.Message
		detail.Details = me.Details
	}
	return status, detail
}

func writeError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}
