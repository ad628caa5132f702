package entities

import "time"

type SlotRequest struct {
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
	Coordinates string  `json:"coordinates"`
	Description string  `json:"description"`
	VehicleType string  `json:"type"`
}

// SlotFilter narrows the user-facing slot listing. Zero values mean
// "no constraint".
type SlotFilter struct {
	Status      string
	Price       *float64
	Address     string
	VehicleType string
}

type SlotResponse struct {
	ID          int       `json:"id"`
	Status      string    `json:"status"`
	Price       float64   `json:"price"`
	Address     string    `json:"address"`
	Coordinates string    `json:"coordinates"`
	Description string    `json:"description"`
	VehicleType string    `json:"type"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`

	// Bookings is only populated on the detail endpoints; owners see the
	// full rows, users only upcoming time ranges.
	Bookings []SlotBookingInfo `json:"bookings,omitempty"`
}

type SlotBookingInfo struct {
	ID              int       `json:"id"`
	UserEmail       string    `json:"user_email,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPrice      float64   `json:"total_price,omitempty"`
	Booked          bool      `json:"booked,omitempty"`
	IsPaid          bool      `json:"is_paid,omitempty"`
	Status          string    `json:"status,omitempty"`
}
