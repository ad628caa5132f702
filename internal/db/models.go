package db

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleProvider = "provider"
	RoleUser     = "user"
)

// Slot statuses.
const (
	SlotAvailable = "Available"
	SlotBooked    = "Booked"
	SlotReserved  = "Reserved"
)

// Payment statuses. Pending is the only non-terminal state.
const (
	PaymentPending = "Pending"
	PaymentSuccess = "Success"
	PaymentFailed  = "Failed"
)

type User struct {
	ID           int
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ParkSlot struct {
	ID          int
	OwnerID     int
	Status      string
	Price       float64 // per hour
	Address     string
	Coordinates string
	Description string
	VehicleType string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Booking struct {
	ID              int
	SlotID          int
	UserID          int
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	TotalPrice      float64
	Booked          bool
	IsPaid          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Payment struct {
	ID            int
	BookingID     int
	UserID        int
	Amount        float64
	Pidx          string
	PaymentURL    string
	TransactionID sql.NullString
	Status        string
	GatewayStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Rating struct {
	ID        int
	SlotID    int
	UserID    int
	Value     int
	CreatedAt time.Time
}
