package service

import (
	"testing"
	"time"

	"parko/internal/db"
	"parko/internal/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingFixture() (*RatingService, *fakeBookingStore, *fakeRatingStore) {
	bookings := newFakeBookingStore()
	bookings.bookings[1] = &db.Booking{
		ID: 1, SlotID: 7, UserID: 3,
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
		Booked:    true, IsPaid: true,
	}
	ratings := newFakeRatingStore()
	return NewRatingService(bookings, ratings), bookings, ratings
}

func TestRateSlot(t *testing.T) {
	svc, _, ratings := newRatingFixture()

	require.NoError(t, svc.RateSlot(3, 1, 4))

	value, ok, err := ratings.GetValue(7, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, value)
}

func TestRateSlotDuplicateConflict(t *testing.T) {
	svc, _, _ := newRatingFixture()

	require.NoError(t, svc.RateSlot(3, 1, 4))

	err := svc.RateSlot(3, 1, 5)
	require.Error(t, err)
	assert.Equal(t, 409, httperr.From(err).Code)
}

func TestRateSlotValueBounds(t *testing.T) {
	svc, _, _ := newRatingFixture()

	for _, value := range []int{0, -1, 6, 100} {
		err := svc.RateSlot(3, 1, value)
		require.Error(t, err, "rating %d must be rejected", value)
		assert.Equal(t, 400, httperr.From(err).Code)
	}
	assert.NoError(t, svc.RateSlot(3, 1, 1))
}

func TestRateSlotBookingNotFound(t *testing.T) {
	svc, _, _ := newRatingFixture()

	err := svc.RateSlot(3, 99, 4)
	require.Error(t, err)
	assert.Equal(t, 404, httperr.From(err).Code)
}

// A booking that exists but belongs to someone else, or is still
// unconfirmed, reads as not found.
func TestRateSlotWrongUserOrUnconfirmed(t *testing.T) {
	svc, bookings, _ := newRatingFixture()

	err := svc.RateSlot(4, 1, 4)
	require.Error(t, err)
	assert.Equal(t, 404, httperr.From(err).Code)

	bookings.bookings[2] = &db.Booking{ID: 2, SlotID: 8, UserID: 3, Booked: false}
	err = svc.RateSlot(3, 2, 4)
	require.Error(t, err)
	assert.Equal(t, 404, httperr.From(err).Code)
}
