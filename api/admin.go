package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrator surface. Privilege is enforced by
// the route group middleware, not here.
type AdminHandler struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	stats    admin.StatsUseCase
}

func NewAdminHandler(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, statsSvc admin.StatsUseCase) *AdminHandler {
	return &AdminHandler{flights: flightSvc, bookings: bookingSvc, stats: statsSvc}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.listFlights)
	router.POST("/flights", h.createFlight)
	router.GET("/bookings", h.listBookings)
	router.GET("/stats", h.getStats)
}

func (h *AdminHandler) listFlights(c *gin.Context) {
	result, err := h.flights.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) createFlight(c *gin.Context) {
	var req flights.CreateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrValidation, err))
		return
	}

	flight, err := h.flights.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	result, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) getStats(c *gin.Context) {
	result, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
