package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps the business error taxonomy onto HTTP statuses. Unknown
// errors are logged with detail and surfaced as an opaque 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrDuplicateFlight),
		errors.Is(err, domain.ErrInsufficientSeats):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidSession):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBookingNotCancellable):
		status = http.StatusConflict
	default:
		slog.Error("internal failure", "path", c.FullPath(), "error", err)
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
