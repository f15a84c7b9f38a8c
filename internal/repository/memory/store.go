// Package memory provides a mutex-guarded in-memory implementation of the
// repository interfaces. It backs tests and DSN-less local runs; the store
// mutex serializes every seat-counter read-modify-write, which satisfies the
// per-flight mutual exclusion the booking ledger requires.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

var (
	_ repository.UserRepository    = (*Store)(nil)
	_ repository.FlightRepository  = (*FlightStore)(nil)
	_ repository.BookingRepository = (*BookingStore)(nil)
	_ repository.StatsRepository   = (*StatsStore)(nil)
)

type Store struct {
	mu sync.Mutex

	users    map[int64]*domain.User
	flights  map[int64]*domain.Flight
	bookings map[int64]*domain.Booking
	pnrs     map[string]struct{}

	nextUserID    int64
	nextFlightID  int64
	nextBookingID int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*domain.User),
		flights:  make(map[int64]*domain.Flight),
		bookings: make(map[int64]*domain.Booking),
		pnrs:     make(map[string]struct{}),
	}
}

// --- UserRepository ---

func (s *Store) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrDuplicateAccount
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- FlightRepository ---

// Flights exposes the flight side of the store under a distinct method set so
// one Store value can satisfy both Create signatures.
func (s *Store) Flights() *FlightStore { return &FlightStore{s} }

type FlightStore struct {
	s *Store
}

func (fs *FlightStore) Create(ctx context.Context, flight *domain.Flight) error {
	s := fs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.flights {
		if f.FlightNumber == flight.FlightNumber {
			return domain.ErrDuplicateFlight
		}
	}

	s.nextFlightID++
	flight.ID = s.nextFlightID
	flight.CreatedAt = time.Now()
	cp := *flight
	s.flights[flight.ID] = &cp
	return nil
}

func (fs *FlightStore) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	s := fs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (fs *FlightStore) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	s := fs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	flights := make([]domain.Flight, 0)
	for _, f := range s.flights {
		if f.Status != domain.FlightStatusActive {
			continue
		}
		if filter.From != "" && !strings.Contains(strings.ToLower(f.From), strings.ToLower(filter.From)) {
			continue
		}
		if filter.To != "" && !strings.Contains(strings.ToLower(f.To), strings.ToLower(filter.To)) {
			continue
		}
		if filter.Date != nil {
			day := filter.Date.UTC().Truncate(24 * time.Hour)
			dep := f.DepartureTime.UTC()
			if dep.Before(day) || !dep.Before(day.Add(24*time.Hour)) {
				continue
			}
		}
		flights = append(flights, *f)
	}

	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights, nil
}

func (fs *FlightStore) ListAll(ctx context.Context) ([]domain.Flight, error) {
	s := fs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	flights := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		flights = append(flights, *f)
	}
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].CreatedAt.Equal(flights[j].CreatedAt) {
			return flights[i].ID > flights[j].ID
		}
		return flights[i].CreatedAt.After(flights[j].CreatedAt)
	})
	return flights, nil
}

// --- BookingRepository ---

func (s *Store) Bookings() *BookingStore { return &BookingStore{s} }

type BookingStore struct {
	s *Store
}

// Create performs the availability check, seat decrement, label allocation
// and booking insert under one lock hold, so concurrent reservations on the
// same flight cannot both take the last seat.
func (bs *BookingStore) Create(ctx context.Context, booking *domain.Booking, seatCount int) error {
	s := bs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[booking.FlightID]
	if !ok {
		return domain.ErrNotFound
	}
	if seatCount > f.AvailableSeats {
		return domain.ErrInsufficientSeats
	}
	if _, taken := s.pnrs[booking.PNR]; taken {
		return domain.ErrDuplicatePNR
	}

	f.AvailableSeats -= seatCount
	sold := f.TotalSeats - f.AvailableSeats - seatCount
	booking.SeatNumbers = domain.AllocateSeats(sold, seatCount)
	booking.TotalPrice = f.Price * int64(seatCount)
	booking.Status = domain.BookingStatusConfirmed
	booking.BookingDate = time.Now()

	s.nextBookingID++
	booking.ID = s.nextBookingID
	s.pnrs[booking.PNR] = struct{}{}

	cp := *booking
	s.bookings[booking.ID] = &cp

	snapshot := *f
	booking.Flight = &snapshot
	return nil
}

func (bs *BookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := bs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (bs *BookingStore) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	s := bs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrBookingNotCancellable
	}

	b.Status = domain.BookingStatusCancelled
	if f, ok := s.flights[b.FlightID]; ok {
		f.AvailableSeats += len(b.SeatNumbers)
		cp := *b
		snapshot := *f
		cp.Flight = &snapshot
		return &cp, nil
	}
	cp := *b
	return &cp, nil
}

func (bs *BookingStore) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	s := bs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		bookings = append(bookings, s.joinLocked(b, false))
	}
	sortBookings(bookings)
	return bookings, nil
}

func (bs *BookingStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	s := bs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, s.joinLocked(b, true))
	}
	sortBookings(bookings)
	return bookings, nil
}

func (s *Store) joinLocked(b *domain.Booking, withUser bool) domain.Booking {
	cp := *b
	if f, ok := s.flights[b.FlightID]; ok {
		snapshot := *f
		cp.Flight = &snapshot
	}
	if withUser {
		if u, ok := s.users[b.UserID]; ok {
			cp.UserName = u.Name
			cp.UserEmail = u.Email
		}
	}
	return cp
}

func sortBookings(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
}

// --- StatsRepository ---

func (s *Store) StatsRepo() *StatsStore { return &StatsStore{s} }

type StatsStore struct {
	s *Store
}

// Stats computes the rollup under the store lock, so it never observes a
// half-applied reservation.
func (ss *StatsStore) Stats(ctx context.Context) (*domain.Stats, error) {
	s := ss.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.Stats{
		TotalFlights:  int64(len(s.flights)),
		TotalBookings: int64(len(s.bookings)),
	}
	for _, u := range s.users {
		if !u.IsAdmin {
			stats.TotalUsers++
		}
	}
	for _, b := range s.bookings {
		if b.Status == domain.BookingStatusConfirmed {
			stats.TotalRevenue += b.TotalPrice
		}
	}
	return stats, nil
}
