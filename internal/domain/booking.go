package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId"`
	FlightID       int64         `json:"flightId"`
	PassengerName  string        `json:"passengerName"`
	PassengerEmail string        `json:"passengerEmail"`
	PassengerPhone string        `json:"passengerPhone"`
	SeatNumbers    []string      `json:"seatNumbers"`
	TotalPrice     int64         `json:"totalPrice"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"bookingDate"`
	PNR            string        `json:"pnr"`

	// Denormalized display fields, populated by listing/reserve reads.
	Flight    *Flight `json:"flight,omitempty"`
	UserName  string  `json:"userName,omitempty"`
	UserEmail string  `json:"userEmail,omitempty"`
}

// AllocateSeats labels count seats of a 6-abreast cabin starting at the
// sold-so-far offset. Callers must invoke it inside the same critical section
// as the seat decrement so offsets never overlap between bookings.
func AllocateSeats(sold, count int) []string {
	seats := make([]string, 0, count)
	for i := sold; i < sold+count; i++ {
		seats = append(seats, fmt.Sprintf("%d%c", i/6+1, 'A'+rune(i%6)))
	}
	return seats
}
