// Package flights implements the flight catalog: public search, lookups and
// the administrator-facing create/list operations.
package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	ListAll(ctx context.Context) ([]domain.Flight, error)
}

// Cache holds recent search results. A nil cache disables caching.
type Cache interface {
	GetSearch(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetSearch(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
}

type CreateFlightInput struct {
	FlightNumber  string    `json:"flightNumber"`
	Airline       string    `json:"airline"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Duration      string    `json:"duration"`
	Price         int64     `json:"price"`
	TotalSeats    int       `json:"totalSeats"`
	Aircraft      string    `json:"aircraft"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, filter); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, filter, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and persists a new listing. Available seats always start
// at full capacity and the lifecycle status starts active.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := validateFlight(input); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:   input.FlightNumber,
		Airline:        input.Airline,
		From:           input.From,
		To:             input.To,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		Duration:       input.Duration,
		Price:          input.Price,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		Aircraft:       input.Aircraft,
		Status:         domain.FlightStatusActive,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) ListAll(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.ListAll(ctx)
}

func validateFlight(input CreateFlightInput) error {
	switch {
	case input.FlightNumber == "":
		return fmt.Errorf("%w: flight number is required", domain.ErrValidation)
	case input.Airline == "":
		return fmt.Errorf("%w: airline is required", domain.ErrValidation)
	case input.From == "":
		return fmt.Errorf("%w: origin is required", domain.ErrValidation)
	case input.To == "":
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	case input.DepartureTime.IsZero():
		return fmt.Errorf("%w: departure time is required", domain.ErrValidation)
	case input.ArrivalTime.IsZero():
		return fmt.Errorf("%w: arrival time is required", domain.ErrValidation)
	case !input.ArrivalTime.After(input.DepartureTime):
		return fmt.Errorf("%w: arrival must be after departure", domain.ErrValidation)
	case input.Duration == "":
		return fmt.Errorf("%w: duration is required", domain.ErrValidation)
	case input.Price <= 0:
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	case input.TotalSeats <= 0:
		return fmt.Errorf("%w: total seats must be positive", domain.ErrValidation)
	case input.Aircraft == "":
		return fmt.Errorf("%w: aircraft is required", domain.ErrValidation)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
