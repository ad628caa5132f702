package service

import (
	"errors"

	"parko/internal/db"
	"parko/internal/httperr"
	"parko/internal/repository"
)

type ConfirmedBookingStore interface {
	GetConfirmedForUser(bookingID, userID int) (*db.Booking, error)
}

type RatingStore interface {
	Create(r *db.Rating) error
}

type RatingService struct {
	bookings ConfirmedBookingStore
	ratings  RatingStore
}

func NewRatingService(bookings ConfirmedBookingStore, ratings RatingStore) *RatingService {
	return &RatingService{bookings: bookings, ratings: ratings}
}

// RateSlot records a 1-5 rating for the slot behind one of the user's
// confirmed bookings. A user rates a slot at most once.
func (s *RatingService) RateSlot(userID, bookingID, value int) error {
	if value < 1 || value > 5 {
		return httperr.Validation("Rating should be between 1 and 5.")
	}

	booking, err := s.bookings.GetConfirmedForUser(bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.NotFound("Booking not found.")
		}
		return err
	}

	rating := &db.Rating{
		SlotID: booking.SlotID,
		UserID: userID,
		Value:  value,
	}
	if err := s.ratings.Create(rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.Conflict("You have already rated this park slot.")
		}
		return err
	}
	return nil
}
