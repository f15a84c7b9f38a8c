package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *PGStatsRepository {
	return &PGStatsRepository{db: db}
}

// Stats reads all four aggregates in one statement so the rollup is a single
// consistent snapshot relative to concurrent reservations.
func (r *PGStatsRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM flights),
		(SELECT count(*) FROM bookings),
		(SELECT count(*) FROM users WHERE NOT is_admin),
		(SELECT coalesce(sum(total_price), 0) FROM bookings WHERE status=$1)`,
		domain.BookingStatusConfirmed).
		Scan(&s.TotalFlights, &s.TotalBookings, &s.TotalUsers, &s.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

var _ StatsRepository = (*PGStatsRepository)(nil)
