// Package booking implements the booking ledger: atomic reservation against
// the flight catalog, cancellation with seat restoration, and the account and
// administrator listings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type BookingUseCase interface {
	Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64, requesterID int64, isAdmin bool) (*domain.Booking, error)
	ListForAccount(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

// Producer publishes booking lifecycle events. A nil producer disables them.
type Producer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type ReserveInput struct {
	UserID         int64
	FlightID       int64
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	SeatCount      int
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *slog.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
		s.notificationsTopic = notificationsTopic
	}
}

func NewBookingService(bookings repository.BookingRepository, logger *slog.Logger, opts ...BookingServiceOption) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	service := &BookingService{bookings: bookings, logger: logger}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Reserve validates the request, issues a reservation reference and hands the
// repository the atomic decrement-and-insert. Pricing and seat labels come
// back filled in from the same critical section as the availability check.
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error) {
	switch {
	case input.SeatCount <= 0:
		return nil, fmt.Errorf("%w: seat count must be positive", domain.ErrValidation)
	case input.PassengerName == "":
		return nil, fmt.Errorf("%w: passenger name is required", domain.ErrValidation)
	case input.PassengerEmail == "":
		return nil, fmt.Errorf("%w: passenger email is required", domain.ErrValidation)
	case input.PassengerPhone == "":
		return nil, fmt.Errorf("%w: passenger phone is required", domain.ErrValidation)
	}

	booking := &domain.Booking{
		UserID:         input.UserID,
		FlightID:       input.FlightID,
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		PassengerPhone: input.PassengerPhone,
	}

	// A reference collision is a transient conflict, not a caller mistake;
	// regenerate and retry until definitive.
	err := domain.ErrDuplicatePNR
	for attempt := 0; attempt < pnrAttempts && errors.Is(err, domain.ErrDuplicatePNR); attempt++ {
		booking.PNR = NewPNR()
		err = s.bookings.Create(ctx, booking, input.SeatCount)
		if errors.Is(err, domain.ErrDuplicatePNR) {
			s.logger.Warn("booking reference collision", "pnr", booking.PNR, "attempt", attempt+1)
		}
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// Cancel restores the booking's seats and flips its status. Only the owning
// account or an administrator may cancel; cancelling twice is refused so
// seats are never restored twice.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64, requesterID int64, isAdmin bool) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != requesterID && !isAdmin {
		return nil, domain.ErrForbidden
	}

	cancelled, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", cancelled)
	return cancelled, nil
}

func (s *BookingService) ListForAccount(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// publish emits the lifecycle event after the state change committed. Event
// delivery failures are logged, never surfaced to the caller.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	event := kafka.BookingEvent{
		Type:        eventType,
		PNR:         booking.PNR,
		FlightID:    booking.FlightID,
		Seats:       booking.SeatNumbers,
		Email:       booking.PassengerEmail,
		Status:      string(booking.Status),
		TotalPrice:  booking.TotalPrice,
		BookingDate: booking.BookingDate,
	}
	if booking.Flight != nil {
		event.FlightNumber = booking.Flight.FlightNumber
	}

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		s.logger.Warn("publish booking event", "type", eventType, "pnr", booking.PNR, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			s.logger.Warn("publish booking notification", "pnr", booking.PNR, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
