package handler

import (
	"errors"
	"net/http"
	"os"

	"rasosehat-backend/internal/service"
	"rasosehat-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps the service error taxonomy onto HTTP codes. Store-layer
// failures surface verbose detail only outside release mode.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		logrus.WithError(err).Error("internal error")
		message := "internal server error"
		if os.Getenv("GIN_MODE") != "release" {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, message))
	}
}
