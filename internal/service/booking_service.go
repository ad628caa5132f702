package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"parko/internal/db"
	"parko/internal/entities"
	"parko/internal/httperr"
	"parko/internal/khalti"
	"parko/internal/repository"
	"parko/internal/utils"
)

// MinimumFee is the floor for a booking's total price.
const MinimumFee = 10.0

// Booking display statuses, derived from end_time at read time.
const (
	bookingStatusBooked  = "Booked"
	bookingStatusExpired = "Expired"
)

type SlotStore interface {
	GetByID(id int) (*db.ParkSlot, error)
}

type BookingStore interface {
	CreateIfAvailable(b *db.Booking) (bool, error)
	Delete(id int) error
	ListByUser(userID int) ([]repository.UserBookingRow, error)
	ListBySlot(slotID int) ([]repository.SlotBookingRow, error)
}

type PaymentStore interface {
	Create(p *db.Payment) error
}

type PaymentGateway interface {
	CreateLink(ctx context.Context, amount float64, bookingID int, orderID string) (*khalti.PaymentLink, error)
}

type RatingReader interface {
	GetValue(slotID, userID int) (int, bool, error)
}

type BookingService struct {
	slots    SlotStore
	bookings BookingStore
	payments PaymentStore
	gateway  PaymentGateway
	ratings  RatingReader
}

func NewBookingService(slots SlotStore, bookings BookingStore, payments PaymentStore, gateway PaymentGateway, ratings RatingReader) *BookingService {
	return &BookingService{
		slots:    slots,
		bookings: bookings,
		payments: payments,
		gateway:  gateway,
		ratings:  ratings,
	}
}

// DurationMinutes is the booking duration rounded to whole minutes.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// TotalPrice charges the hourly rate for the exact duration, rounded to two
// decimals, with MinimumFee as the floor.
func TotalPrice(start, end time.Time, pricePerHour float64) float64 {
	hours := end.Sub(start).Hours()
	price := math.Round(hours*pricePerHour*100) / 100
	return math.Max(price, MinimumFee)
}

// CreateBooking reserves a time range on a slot and returns a payment link.
// The booking stays unconfirmed (booked=false) until the reconciler observes
// a successful payment. Only confirmed bookings participate in the overlap
// check, so two unpaid bookings for the same range do not block each other;
// the first payment to complete wins the range.
func (s *BookingService) CreateBooking(ctx context.Context, userID, slotID int, start, end time.Time) (*entities.BookingCreated, error) {
	if !end.After(start) {
		return nil, httperr.Validation("end_time must be after start_time.")
	}

	slot, err := s.slots.GetByID(slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.NotFound("Park Slot not found.")
		}
		return nil, err
	}

	booking := &db.Booking{
		SlotID:          slot.ID,
		UserID:          userID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: DurationMinutes(start, end),
		TotalPrice:      TotalPrice(start, end, slot.Price),
	}

	created, err := s.bookings.CreateIfAvailable(booking)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, httperr.Conflict("Slot is already booked for the selected time range.")
	}

	link, err := s.gateway.CreateLink(ctx, booking.TotalPrice, booking.ID, utils.OrderID())
	if err != nil {
		log.Printf("Payment link creation failed for booking %d: %v", booking.ID, err)
		if delErr := s.bookings.Delete(booking.ID); delErr != nil {
			log.Printf("Failed to delete booking %d after gateway failure: %v", booking.ID, delErr)
		}
		return nil, httperr.Internal("Failed to create payment link.")
	}

	payment := &db.Payment{
		BookingID:     booking.ID,
		UserID:        userID,
		Amount:        booking.TotalPrice,
		Pidx:          link.Pidx,
		PaymentURL:    link.PaymentURL,
		Status:        db.PaymentPending,
		GatewayStatus: db.PaymentPending,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	return &entities.BookingCreated{
		BookingID:       booking.ID,
		DurationMinutes: booking.DurationMinutes,
		TotalPrice:      booking.TotalPrice,
		PaymentURL:      link.PaymentURL,
	}, nil
}

// ListUserBookings returns the user's confirmed bookings, newest first.
// Expired bookings carry the rating the user gave the slot, if any.
func (s *BookingService) ListUserBookings(userID int) ([]entities.UserBookingResponse, error) {
	rows, err := s.bookings.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]entities.UserBookingResponse, 0, len(rows))
	for _, row := range rows {
		status := bookingStatusBooked
		if !row.Booking.EndTime.After(now) {
			status = bookingStatusExpired
		}

		var rating *int
		if status == bookingStatusExpired {
			value, ok, err := s.ratings.GetValue(row.Booking.SlotID, userID)
			if err != nil {
				return nil, err
			}
			if ok {
				rating = &value
			}
		}

		result = append(result, entities.UserBookingResponse{
			ID:              row.Booking.ID,
			SlotID:          row.Booking.SlotID,
			ParkingAddress:  row.SlotAddress,
			ParkingLocation: row.SlotCoordinates,
			VehicleType:     row.SlotVehicleType,
			StartTime:       row.Booking.StartTime,
			EndTime:         row.Booking.EndTime,
			DurationMinutes: row.Booking.DurationMinutes,
			TotalPrice:      row.Booking.TotalPrice,
			Booked:          row.Booking.Booked,
			IsPaid:          row.Booking.IsPaid,
			Status:          status,
			Rating:          rating,
		})
	}
	return result, nil
}

// ListSlotBookings returns all confirmed bookings of a slot to its owner.
func (s *BookingService) ListSlotBookings(slotID, requesterID int) ([]entities.SlotBookingInfo, error) {
	slot, err := s.slots.GetByID(slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.NotFound("Park Slot not found.")
		}
		return nil, err
	}
	if slot.OwnerID != requesterID {
		return nil, httperr.Forbidden("You are not the owner of this park slot.")
	}

	rows, err := s.bookings.ListBySlot(slotID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]entities.SlotBookingInfo, 0, len(rows))
	for _, row := range rows {
		status := bookingStatusBooked
		if !row.Booking.EndTime.After(now) {
			status = bookingStatusExpired
		}
		result = append(result, entities.SlotBookingInfo{
			ID:              row.Booking.ID,
			UserEmail:       row.UserEmail,
			StartTime:       row.Booking.StartTime,
			EndTime:         row.Booking.EndTime,
			DurationMinutes: row.Booking.DurationMinutes,
			TotalPrice:      row.Booking.TotalPrice,
			Booked:          row.Booking.Booked,
			IsPaid:          row.Booking.IsPaid,
			Status:          status,
		})
	}
	return result, nil
}
