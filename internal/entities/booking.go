package entities

import "time"

type BookingRequest struct {
	ParkSlotID int    `json:"park_slot_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// BookingCreated is the response to a successful booking request; the
// booking is not confirmed until the payment behind PaymentURL completes.
type BookingCreated struct {
	BookingID       int     `json:"booking_id"`
	DurationMinutes int     `json:"duration_minutes"`
	TotalPrice      float64 `json:"total_price"`
	PaymentURL      string  `json:"payment_url"`
}

type UserBookingResponse struct {
	ID              int       `json:"id"`
	SlotID          int       `json:"slot_id"`
	ParkingAddress  string    `json:"parking_address"`
	ParkingLocation string    `json:"parking_coordinate"`
	VehicleType     string    `json:"vehicle_type"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPrice      float64   `json:"total_price"`
	Booked          bool      `json:"booked"`
	IsPaid          bool      `json:"is_paid"`
	Status          string    `json:"status"`
	Rating          *int      `json:"rating"`
}

type RatingRequest struct {
	BookingID int `json:"booking_id"`
	Rating    int `json:"rating"`
}
