package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.DELETE("/:id", h.cancel)
}

type createBookingRequest struct {
	FlightID       int64  `json:"flightId"`
	PassengerName  string `json:"passengerName"`
	PassengerEmail string `json:"passengerEmail"`
	PassengerPhone string `json:"passengerPhone"`
	Seats          int    `json:"seats"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrValidation, err))
		return
	}

	created, err := h.service.Reserve(c.Request.Context(), booking.ReserveInput{
		UserID:         requesterID(c),
		FlightID:       req.FlightID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		SeatCount:      req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListForAccount(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid booking id", domain.ErrValidation))
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id, requesterID(c), requesterIsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
