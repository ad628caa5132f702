package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parko/internal/db"
)

// UserBookingRow is a booking joined with the slot fields a user's booking
// list needs.
type UserBookingRow struct {
	Booking         db.Booking
	SlotAddress     string
	SlotCoordinates string
	SlotVehicleType string
}

// SlotBookingRow is a booking joined with the booking user's email, for the
// owner-facing listing.
type SlotBookingRow struct {
	Booking   db.Booking
	UserEmail string
}

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, slot_id, user_id, start_time, end_time, duration_minutes, total_price, booked, is_paid, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *db.Booking) error {
	return row.Scan(
		&b.ID, &b.SlotID, &b.UserID, &b.StartTime, &b.EndTime, &b.DurationMinutes,
		&b.TotalPrice, &b.Booked, &b.IsPaid, &b.CreatedAt, &b.UpdatedAt,
	)
}

// CreateIfAvailable inserts the booking unless a confirmed booking on the
// same slot overlaps [start, end). The overlap check and the insert run in
// one transaction so the window between them cannot admit a conflicting
// confirmed booking. Returns false without inserting when the range is
// taken.
func (r *BookingRepository) CreateIfAvailable(b *db.Booking) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var taken bool
	err = tx.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE slot_id = $1 AND booked AND start_time < $3 AND end_time > $2
		)`, b.SlotID, b.StartTime, b.EndTime).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("error checking booking overlap: %w", err)
	}
	if taken {
		return false, nil
	}

	err = tx.QueryRow(`
		INSERT INTO bookings (slot_id, user_id, start_time, end_time, duration_minutes, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, booked, is_paid, created_at, updated_at`,
		b.SlotID, b.UserID, b.StartTime, b.EndTime, b.DurationMinutes, b.TotalPrice,
	).Scan(&b.ID, &b.Booked, &b.IsPaid, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error inserting booking: %w", err)
	}

	return true, tx.Commit()
}

// Delete removes a booking. Used as the compensating action when payment
// link creation fails.
func (r *BookingRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	return err
}

func (r *BookingRepository) GetByID(id int) (*db.Booking, error) {
	var b db.Booking
	err := scanBooking(r.DB.QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return &b, nil
}

// GetConfirmedForUser returns a confirmed booking belonging to the user.
func (r *BookingRepository) GetConfirmedForUser(bookingID, userID int) (*db.Booking, error) {
	var b db.Booking
	err := scanBooking(r.DB.QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND user_id = $2 AND booked`,
		bookingID, userID), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking %d: %w", bookingID, err)
	}
	return &b, nil
}

// Confirm flips a booking to paid and booked once its payment succeeds.
// Re-applying to an already confirmed booking is harmless.
func (r *BookingRepository) Confirm(bookingID int) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET booked = TRUE, is_paid = TRUE, updated_at = NOW() WHERE id = $1`,
		bookingID)
	if err != nil {
		return fmt.Errorf("error confirming booking %d: %w", bookingID, err)
	}
	return nil
}

func (r *BookingRepository) ListByUser(userID int) ([]UserBookingRow, error) {
	query := `
		SELECT b.id, b.slot_id, b.user_id, b.start_time, b.end_time, b.duration_minutes,
		       b.total_price, b.booked, b.is_paid, b.created_at, b.updated_at,
		       s.address, s.coordinates, s.vehicle_type
		FROM bookings b
		JOIN park_slots s ON s.id = b.slot_id
		WHERE b.user_id = $1 AND b.booked
		ORDER BY b.start_time DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings of user %d: %w", userID, err)
	}
	defer rows.Close()

	var result []UserBookingRow
	for rows.Next() {
		var row UserBookingRow
		b := &row.Booking
		err := rows.Scan(
			&b.ID, &b.SlotID, &b.UserID, &b.StartTime, &b.EndTime, &b.DurationMinutes,
			&b.TotalPrice, &b.Booked, &b.IsPaid, &b.CreatedAt, &b.UpdatedAt,
			&row.SlotAddress, &row.SlotCoordinates, &row.SlotVehicleType,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user booking: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *BookingRepository) ListBySlot(slotID int) ([]SlotBookingRow, error) {
	query := `
		SELECT b.id, b.slot_id, b.user_id, b.start_time, b.end_time, b.duration_minutes,
		       b.total_price, b.booked, b.is_paid, b.created_at, b.updated_at,
		       u.email
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.slot_id = $1 AND b.booked
		ORDER BY b.start_time DESC`

	rows, err := r.DB.Query(query, slotID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings of slot %d: %w", slotID, err)
	}
	defer rows.Close()

	var result []SlotBookingRow
	for rows.Next() {
		var row SlotBookingRow
		b := &row.Booking
		err := rows.Scan(
			&b.ID, &b.SlotID, &b.UserID, &b.StartTime, &b.EndTime, &b.DurationMinutes,
			&b.TotalPrice, &b.Booked, &b.IsPaid, &b.CreatedAt, &b.UpdatedAt,
			&row.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot booking: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DeleteUnconfirmedBefore removes bookings that never got confirmed and were
// created before the cutoff. Their payments go with them via the foreign key.
func (r *BookingRepository) DeleteUnconfirmedBefore(cutoff time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM bookings WHERE NOT booked AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale unconfirmed bookings: %w", err)
	}
	return result.RowsAffected()
}
