package handlers

import (
	"errors"
	"net/http"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Every endpoint replies with the same envelope:
// {"status": "success"|"fail"|"error", "message": ..., "data": ..., "errors": ...}.

func respondOK(c *gin.Context, message string, data interface{}) {
	respondSuccess(c, http.StatusOK, message, data)
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	respondSuccess(c, http.StatusCreated, message, data)
}

func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func respondError(c *gin.Context, code int, message string) {
	status := "error"
	if code >= 400 && code < 500 {
		status = "fail"
	}
	c.JSON(code, gin.H{"status": status, "message": message})
}

func respondValidation(c *gin.Context, errs services.ValidationErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"status":  "error",
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondServiceError maps service sentinel errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		respondValidation(c, verrs)
		return
	}

	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, models.ErrGatewayNotConfigured):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAddressOwner),
		errors.Is(err, services.ErrNotOrderOwner):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrAmountMismatch):
		respondValidation(c, services.ValidationErrors{"amount": err.Error()})
	case errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAddressLocked),
		errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrGatewayInitFailed):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
