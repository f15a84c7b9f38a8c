package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, flight_number, airline, origin, destination, departure_time, arrival_time, duration, price, total_seats, available_seats, aircraft, status, created_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, origin, destination, departure_time, arrival_time, duration, price, total_seats, available_seats, aircraft, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		flight.FlightNumber, flight.Airline, flight.From, flight.To,
		flight.DepartureTime, flight.ArrivalTime, flight.Duration, flight.Price,
		flight.TotalSeats, flight.AvailableSeats, flight.Aircraft, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFlight
		}
		return err
	}
	return nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE status=$1`
	args := []any{domain.FlightStatusActive}

	if filter.From != "" {
		args = append(args, searchPattern(filter.From))
		query += ` AND origin ILIKE $` + itoa(len(args))
	}
	if filter.To != "" {
		args = append(args, searchPattern(filter.To))
		query += ` AND destination ILIKE $` + itoa(len(args))
	}
	if filter.Date != nil {
		day := filter.Date.UTC().Truncate(24 * time.Hour)
		args = append(args, day)
		query += ` AND departure_time >= $` + itoa(len(args))
		args = append(args, day.Add(24*time.Hour))
		query += ` AND departure_time < $` + itoa(len(args))
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListAll(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.From, &f.To,
		&f.DepartureTime, &f.ArrivalTime, &f.Duration, &f.Price,
		&f.TotalSeats, &f.AvailableSeats, &f.Aircraft, &f.Status, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern builds a contains-match ILIKE pattern. User input is escaped
// so % and _ match themselves, the same as the in-memory substring search.
func searchPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

var _ FlightRepository = (*PGFlightRepository)(nil)
