package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parko/internal/db"
)

type RatingRepository struct {
	DB *sql.DB
}

func NewRatingRepository(database *sql.DB) *RatingRepository {
	return &RatingRepository{DB: database}
}

// Create inserts a rating; a second rating for the same (slot, user) pair
// returns ErrDuplicate.
func (r *RatingRepository) Create(rating *db.Rating) error {
	query := `
		INSERT INTO ratings (slot_id, user_id, rating)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query, rating.SlotID, rating.UserID, rating.Value).
		Scan(&rating.ID, &rating.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetValue returns the rating a user gave a slot, with ok=false when there
// is none.
func (r *RatingRepository) GetValue(slotID, userID int) (int, bool, error) {
	var value int
	err := r.DB.QueryRow(
		`SELECT rating FROM ratings WHERE slot_id = $1 AND user_id = $2`,
		slotID, userID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error querying rating: %w", err)
	}
	return value, true, nil
}

// AverageForSlot returns the mean rating of a slot, 0 when unrated.
func (r *RatingRepository) AverageForSlot(slotID int) (float64, error) {
	var avg float64
	err := r.DB.QueryRow(
		`SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE slot_id = $1`,
		slotID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("error querying slot rating average: %w", err)
	}
	return avg, nil
}
