package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"parko/internal/db"
	"parko/internal/httperr"
	"parko/internal/khalti"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func TestTotalPrice(t *testing.T) {
	start := mustTime(t, "2024-05-01T10:00:00")

	// 1.5h at 20/hr -> 30.
	assert.Equal(t, 30.0, TotalPrice(start, start.Add(90*time.Minute), 20))
	// 2h at 10/hr -> 20.
	assert.Equal(t, 20.0, TotalPrice(start, start.Add(2*time.Hour), 10))
	// 30min at 10/hr would be 5; the minimum fee applies.
	assert.Equal(t, MinimumFee, TotalPrice(start, start.Add(30*time.Minute), 10))
	// Rounding to two decimals: 100min at 10/hr = 16.666... -> 16.67.
	assert.Equal(t, 16.67, TotalPrice(start, start.Add(100*time.Minute), 10))
}

func TestDurationMinutes(t *testing.T) {
	start := mustTime(t, "2024-05-01T10:00:00")

	assert.Equal(t, 90, DurationMinutes(start, start.Add(90*time.Minute)))
	assert.Equal(t, 120, DurationMinutes(start, start.Add(2*time.Hour)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(30*time.Second)))
}

func newBookingFixture() (*BookingService, *fakeSlotStore, *fakeBookingStore, *fakePaymentStore, *fakeGateway) {
	slots := &fakeSlotStore{slots: map[int]*db.ParkSlot{
		7: {ID: 7, OwnerID: 2, Status: db.SlotAvailable, Price: 10, Address: "Main St 5", VehicleType: "Car", IsActive: true},
	}}
	bookings := newFakeBookingStore()
	payments := &fakePaymentStore{}
	gateway := &fakeGateway{link: &khalti.PaymentLink{Pidx: "px-1", PaymentURL: "https://pay/px-1"}}
	svc := NewBookingService(slots, bookings, payments, gateway, newFakeRatingStore())
	return svc, slots, bookings, payments, gateway
}

func TestCreateBooking(t *testing.T) {
	svc, _, bookings, payments, _ := newBookingFixture()

	start := mustTime(t, "2024-05-01T10:00:00")
	end := mustTime(t, "2024-05-01T12:00:00")

	result, err := svc.CreateBooking(context.Background(), 3, 7, start, end)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.TotalPrice)
	assert.Equal(t, 120, result.DurationMinutes)
	assert.Equal(t, "https://pay/px-1", result.PaymentURL)

	booking := bookings.bookings[result.BookingID]
	require.NotNil(t, booking)
	assert.False(t, booking.Booked, "a fresh booking must stay unconfirmed until payment")
	assert.False(t, booking.IsPaid)

	require.Len(t, payments.payments, 1)
	payment := payments.payments[0]
	assert.Equal(t, result.BookingID, payment.BookingID)
	assert.Equal(t, 3, payment.UserID)
	assert.Equal(t, 20.0, payment.Amount)
	assert.Equal(t, "px-1", payment.Pidx)
	assert.Equal(t, db.PaymentPending, payment.Status)
	assert.Equal(t, db.PaymentPending, payment.GatewayStatus)
}

func TestCreateBookingSlotNotFound(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()
	start := mustTime(t, "2024-05-01T10:00:00")

	_, err := svc.CreateBooking(context.Background(), 3, 999, start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, 404, httperr.From(err).Code)
}

func TestCreateBookingInvalidRange(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()
	start := mustTime(t, "2024-05-01T10:00:00")

	_, err := svc.CreateBooking(context.Background(), 3, 7, start, start)
	require.Error(t, err)
	assert.Equal(t, 400, httperr.From(err).Code)

	_, err = svc.CreateBooking(context.Background(), 3, 7, start, start.Add(-time.Hour))
	require.Error(t, err)
	assert.Equal(t, 400, httperr.From(err).Code)
}

func TestCreateBookingOverlapConflict(t *testing.T) {
	svc, _, bookings, payments, _ := newBookingFixture()
	bookings.conflict = true

	start := mustTime(t, "2024-05-01T10:00:00")
	_, err := svc.CreateBooking(context.Background(), 3, 7, start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, 409, httperr.From(err).Code)
	assert.Empty(t, payments.payments)
}

func TestCreateBookingGatewayFailureRollsBack(t *testing.T) {
	svc, _, bookings, payments, gateway := newBookingFixture()
	gateway.linkErr = errors.New("connection refused")

	start := mustTime(t, "2024-05-01T10:00:00")
	_, err := svc.CreateBooking(context.Background(), 3, 7, start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, 500, httperr.From(err).Code)

	assert.Empty(t, bookings.bookings, "booking must be deleted when the payment link fails")
	assert.Empty(t, payments.payments)
}

func TestListUserBookingsRatingOnExpired(t *testing.T) {
	slots := &fakeSlotStore{slots: map[int]*db.ParkSlot{}}
	bookings := newFakeBookingStore()
	ratings := newFakeRatingStore()
	svc := NewBookingService(slots, bookings, &fakePaymentStore{}, &fakeGateway{}, ratings)

	past := time.Now().UTC().Add(-3 * time.Hour)
	bookings.bookings[1] = &db.Booking{
		ID: 1, SlotID: 7, UserID: 3,
		StartTime: past, EndTime: past.Add(time.Hour),
		Booked: true, IsPaid: true,
	}
	ratings.values[[2]int{7, 3}] = 4

	result, err := svc.ListUserBookings(3)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Expired", result[0].Status)
	require.NotNil(t, result[0].Rating)
	assert.Equal(t, 4, *result[0].Rating)
}

func TestListSlotBookingsForbiddenForNonOwner(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()

	// Slot 7 is owned by user 2.
	_, err := svc.ListSlotBookings(7, 3)
	require.Error(t, err)
	assert.Equal(t, 403, httperr.From(err).Code)

	_, err = svc.ListSlotBookings(7, 2)
	require.NoError(t, err)
}
