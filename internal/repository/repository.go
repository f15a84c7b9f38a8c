// Package repository defines the storage contracts for the identity store,
// flight catalog and booking ledger, plus their postgres implementations.
// Every read-modify-write of a flight's seat counter happens inside a single
// implementation call so callers never see a partially applied reservation.
package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type UserRepository interface {
	// Create persists the user, failing with domain.ErrDuplicateAccount if
	// the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type FlightRepository interface {
	// Create persists the flight, failing with domain.ErrDuplicateFlight if
	// the flight number is already taken.
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	// Search returns active flights matching the filter, departure ascending.
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	// ListAll returns every flight regardless of status, newest first.
	ListAll(ctx context.Context) ([]domain.Flight, error)
}

type BookingRepository interface {
	// Create atomically checks availability, decrements the flight's seat
	// counter by seatCount, allocates seat labels, prices the booking and
	// persists it. The availability check and the decrement are indivisible
	// with respect to concurrent calls on the same flight. Fails with
	// domain.ErrNotFound or domain.ErrInsufficientSeats; on return the
	// booking carries its seat labels, total price and a flight snapshot.
	Create(ctx context.Context, booking *domain.Booking, seatCount int) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Cancel atomically flips a confirmed booking to cancelled and restores
	// its seats. A second cancel fails with domain.ErrBookingNotCancellable
	// instead of restoring seats twice.
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
	// ListByUser returns the account's bookings, newest first, each joined
	// with current flight fields.
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// ListAll returns every booking, newest first, joined with flight and
	// account display fields.
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type StatsRepository interface {
	// Stats returns the admin rollup from a single consistent read: an
	// in-flight reservation either counts fully or not at all.
	Stats(ctx context.Context) (*domain.Stats, error)
}
