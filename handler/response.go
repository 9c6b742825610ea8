package handler

import (
	"errors"
	"net/http"

	"github.com/asknote/asknote-be/service"
	"github.com/asknote/asknote-be/types"
	"github.com/gin-gonic/gin"
)

func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   data,
	})
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.DataResponse{
		Status:  "error",
		Message: message,
	})
}

// respondError maps the error taxonomy onto HTTP statuses with the
// error's human-readable message.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *types.ValidationError
		extractionErr *types.ExtractionError
		capacityErr   *types.CapacityError
		notFoundErr   *types.NotFoundError
	)
	switch {
	case errors.Is(err, service.ErrBusy):
		sendError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &validationErr), errors.As(err, &extractionErr):
		sendError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &capacityErr):
		sendError(c, http.StatusConflict, err.Error())
	case errors.As(err, &notFoundErr):
		sendError(c, http.StatusNotFound, err.Error())
	default:
		sendError(c, http.StatusInternalServerError, err.Error())
	}
}
