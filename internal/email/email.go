package email

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/flightbooking/internal/kafka"
)

// Sender delivers booking notifications. The current implementation only
// logs; a real mail transport slots in behind the same method.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.logger.Info("sending booking email",
		"to", event.Email,
		"type", event.Type,
		"pnr", event.PNR,
		"flight", event.FlightNumber,
		"seats", len(event.Seats),
	)
	return nil
}
