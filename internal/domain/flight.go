package domain

import "time"

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "active"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusDelayed   FlightStatus = "delayed"
)

type Flight struct {
	ID             int64        `json:"id"`
	FlightNumber   string       `json:"flightNumber"`
	Airline        string       `json:"airline"`
	From           string       `json:"from"`
	To             string       `json:"to"`
	DepartureTime  time.Time    `json:"departureTime"`
	ArrivalTime    time.Time    `json:"arrivalTime"`
	Duration       string       `json:"duration"`
	Price          int64        `json:"price"`
	TotalSeats     int          `json:"totalSeats"`
	AvailableSeats int          `json:"availableSeats"`
	Aircraft       string       `json:"aircraft"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// FlightFilter narrows a public search. Zero values mean "no restriction".
// Date, when set, matches departures within [Date 00:00, Date+24h) UTC.
type FlightFilter struct {
	From string
	To   string
	Date *time.Time
}
