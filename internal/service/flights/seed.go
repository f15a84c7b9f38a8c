package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// SeedSampleFlights populates an empty catalog with the demo listings. It
// inserts nothing when any flight already exists, so running it on every boot
// has no duplication side effects.
func (s *FlightService) SeedSampleFlights(ctx context.Context) error {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, f := range sampleFlights() {
		flight := f
		if err := s.repo.Create(ctx, &flight); err != nil {
			return err
		}
	}
	return nil
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			FlightNumber:   "AI101",
			Airline:        "Air India",
			From:           "Delhi",
			To:             "Mumbai",
			DepartureTime:  time.Date(2024, 3, 20, 6, 0, 0, 0, time.UTC),
			ArrivalTime:    time.Date(2024, 3, 20, 8, 15, 0, 0, time.UTC),
			Duration:       "2h 15m",
			Price:          5500,
			TotalSeats:     180,
			AvailableSeats: 150,
			Aircraft:       "Boeing 737",
			Status:         domain.FlightStatusActive,
		},
		{
			FlightNumber:   "SG205",
			Airline:        "SpiceJet",
			From:           "Mumbai",
			To:             "Bangalore",
			DepartureTime:  time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC),
			ArrivalTime:    time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			Duration:       "1h 30m",
			Price:          4200,
			TotalSeats:     160,
			AvailableSeats: 140,
			Aircraft:       "Boeing 737-800",
			Status:         domain.FlightStatusActive,
		},
		{
			FlightNumber:   "UK771",
			Airline:        "Vistara",
			From:           "Delhi",
			To:             "Bangalore",
			DepartureTime:  time.Date(2024, 3, 20, 14, 15, 0, 0, time.UTC),
			ArrivalTime:    time.Date(2024, 3, 20, 16, 45, 0, 0, time.UTC),
			Duration:       "2h 30m",
			Price:          6800,
			TotalSeats:     200,
			AvailableSeats: 180,
			Aircraft:       "Airbus A320",
			Status:         domain.FlightStatusActive,
		},
		{
			FlightNumber:   "IG401",
			Airline:        "IndiGo",
			From:           "Chennai",
			To:             "Kolkata",
			DepartureTime:  time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC),
			ArrivalTime:    time.Date(2024, 3, 20, 20, 30, 0, 0, time.UTC),
			Duration:       "2h 30m",
			Price:          5200,
			TotalSeats:     186,
			AvailableSeats: 165,
			Aircraft:       "Airbus A320neo",
			Status:         domain.FlightStatusActive,
		},
	}
}
