package service

import (
	"fmt"
	"log"

	"parko/internal/repository"
)

// SenderService sends booking confirmations by email and SMS. Everything is
// best-effort: lookups and delivery failures are logged and dropped so the
// reconciler never stalls on a notification.
type SenderService struct {
	bookings *repository.BookingRepository
	slots    *repository.SlotRepository
	users    *repository.UserRepository
}

func NewSenderService(bookings *repository.BookingRepository, slots *repository.SlotRepository, users *repository.UserRepository) *SenderService {
	return &SenderService{bookings: bookings, slots: slots, users: users}
}

const timeLayout = "02 Jan 2006 15:04 MST"

func (s *SenderService) BookingConfirmed(bookingID int) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		log.Printf("Confirmation notice skipped, booking %d not loadable: %v", bookingID, err)
		return
	}
	user, err := s.users.GetByID(booking.UserID)
	if err != nil {
		log.Printf("Confirmation notice skipped, user %d not loadable: %v", booking.UserID, err)
		return
	}
	slot, err := s.slots.GetByID(booking.SlotID)
	if err != nil {
		log.Printf("Confirmation notice skipped, slot %d not loadable: %v", booking.SlotID, err)
		return
	}

	subject := fmt.Sprintf("Your parking booking #%d is confirmed", booking.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour parking booking is confirmed.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %d\n"+
			"Address: %s\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Total: %.2f\n\n"+
			"Thank you for choosing ParkO.",
		user.Username, booking.ID, slot.Address,
		booking.StartTime.Format(timeLayout), booking.EndTime.Format(timeLayout),
		booking.TotalPrice,
	)

	go func(email, name string) {
		if err := SendEmailWithSendGrid(email, name, subject, body, body); err != nil {
			log.Printf("Failed to send confirmation email for booking %d: %v", booking.ID, err)
		}
	}(user.Email, user.Username)

	if user.Phone == "" {
		return
	}
	sms := fmt.Sprintf("ParkO: booking #%d confirmed. Check-in: %s. Details in your email.",
		booking.ID, booking.StartTime.Format("02/01 15:04"))
	go func(phone string) {
		if err := SendSMS(phone, sms); err != nil {
			log.Printf("Failed to send confirmation SMS for booking %d: %v", booking.ID, err)
		}
	}(user.Phone)
}
