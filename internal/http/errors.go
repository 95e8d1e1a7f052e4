package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haxsysgit/coursework-backend/internal/repository"
	"github.com/haxsysgit/coursework-backend/internal/service"
)

var errNoStorage = errors.New("storage is not configured")

func mapErrorToStatus(err error) int {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail пишет ответ об ошибке. Детали 5xx остаются в логе, клиент получает только requestId.
func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	switch status {
	case http.StatusBadRequest:
		c.JSON(status, gin.H{"error": err.Error()})
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": "Lesson not found"})
	default:
		s.entry(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "requestId": requestID(c)})
	}
}
