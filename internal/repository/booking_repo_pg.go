package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

// Create runs the reservation critical section: a conditional decrement of
// the flight's seat counter and the booking insert commit together or not at
// all. The WHERE guard on the UPDATE makes the availability check indivisible
// from the decrement, so two requests racing for the last seat serialize on
// the flight row and exactly one of them fails.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, seatCount int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	flight, err := scanFlight(tx.QueryRow(ctx, `UPDATE flights
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
		RETURNING `+flightColumns, booking.FlightID, seatCount))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		// Distinguish a missing flight from an exhausted one.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, booking.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientSeats
	}

	sold := flight.TotalSeats - flight.AvailableSeats - seatCount
	booking.SeatNumbers = domain.AllocateSeats(sold, seatCount)
	booking.TotalPrice = flight.Price * int64(seatCount)
	booking.Status = domain.BookingStatusConfirmed

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, passenger_name, passenger_email, passenger_phone, seat_numbers, total_price, status, pnr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, booking_date`,
		booking.UserID, booking.FlightID, booking.PassengerName, booking.PassengerEmail,
		booking.PassengerPhone, booking.SeatNumbers, booking.TotalPrice, booking.Status, booking.PNR).
		Scan(&booking.ID, &booking.BookingDate); err != nil {
		// The only unique constraint on bookings is the reference. The caller
		// regenerates it and retries.
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePNR
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	booking.Flight = flight
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1`, id)
	b, err := scanBookingFields(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Cancel restores the booking's seats and flips its status in one
// transaction. The status guard refuses to restore seats twice.
func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings AS b SET status=$1 WHERE id=$2 AND status=$3 RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, id, domain.BookingStatusConfirmed)
	b, err := scanBookingFields(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrBookingNotCancellable
	}

	flight, err := scanFlight(tx.QueryRow(ctx, `UPDATE flights
		SET available_seats = available_seats + $2
		WHERE id = $1
		RETURNING `+flightColumns, b.FlightID, len(b.SeatNumbers)))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	b.Flight = flight
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingJoinedColumns+`
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		WHERE b.user_id=$1
		ORDER BY b.booking_date DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJoinedBookings(rows, false)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingJoinedColumns+`, u.name, u.email
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		JOIN users u ON u.id = b.user_id
		ORDER BY b.booking_date DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJoinedBookings(rows, true)
}

const bookingColumns = `b.id, b.user_id, b.flight_id, b.passenger_name, b.passenger_email, b.passenger_phone, b.seat_numbers, b.total_price, b.status, b.booking_date, b.pnr`

const bookingJoinedColumns = bookingColumns + `, f.id, f.flight_number, f.airline, f.origin, f.destination, f.departure_time, f.arrival_time, f.duration, f.price, f.total_seats, f.available_seats, f.aircraft, f.status, f.created_at`

func scanBookingFields(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail,
		&b.PassengerPhone, &b.SeatNumbers, &b.TotalPrice, &b.Status, &b.BookingDate, &b.PNR); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectJoinedBookings(rows pgx.Rows, withUser bool) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var f domain.Flight
		dest := []any{&b.ID, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail,
			&b.PassengerPhone, &b.SeatNumbers, &b.TotalPrice, &b.Status, &b.BookingDate, &b.PNR,
			&f.ID, &f.FlightNumber, &f.Airline, &f.From, &f.To, &f.DepartureTime, &f.ArrivalTime,
			&f.Duration, &f.Price, &f.TotalSeats, &f.AvailableSeats, &f.Aircraft, &f.Status, &f.CreatedAt}
		if withUser {
			dest = append(dest, &b.UserName, &b.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		b.Flight = &f
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
