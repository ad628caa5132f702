package service

import (
	"errors"
	"time"

	"parko/internal/db"
	"parko/internal/entities"
	"parko/internal/httperr"
	"parko/internal/repository"
	"parko/internal/utils"
)

type SlotService struct {
	slots    *repository.SlotRepository
	bookings *repository.BookingRepository
	ratings  *repository.RatingRepository
}

func NewSlotService(slots *repository.SlotRepository, bookings *repository.BookingRepository, ratings *repository.RatingRepository) *SlotService {
	return &SlotService{slots: slots, bookings: bookings, ratings: ratings}
}

func validateSlotRequest(req entities.SlotRequest) error {
	if req.Address == "" || req.VehicleType == "" {
		return httperr.Validation("Please provide all required fields.")
	}
	if req.Price <= 0 {
		return httperr.Validation("Price must be greater than zero.")
	}
	if !utils.ValidVehicleType(req.VehicleType) {
		return httperr.Validation("Invalid vehicle type.")
	}
	if req.Status != "" && req.Status != db.SlotAvailable && req.Status != db.SlotBooked && req.Status != db.SlotReserved {
		return httperr.Validation("Invalid slot status.")
	}
	return nil
}

func (s *SlotService) Create(ownerID int, req entities.SlotRequest) (*entities.SlotResponse, error) {
	if err := validateSlotRequest(req); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = db.SlotAvailable
	}

	slot := &db.ParkSlot{
		OwnerID:     ownerID,
		Status:      status,
		Price:       req.Price,
		Address:     req.Address,
		Coordinates: req.Coordinates,
		Description: req.Description,
		VehicleType: req.VehicleType,
	}
	if err := s.slots.Create(slot); err != nil {
		return nil, err
	}
	return s.toResponse(slot)
}

// Get returns a slot with its confirmed bookings. The owner sees every
// booking with user emails and payment state; everyone else only sees the
// time ranges that are still ahead.
func (s *SlotService) Get(slotID, requesterID int) (*entities.SlotResponse, error) {
	slot, err := s.slots.GetByID(slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperr.NotFound("Park Slot not found.")
		}
		return nil, err
	}

	resp, err := s.toResponse(slot)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListBySlot(slotID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	isOwner := slot.OwnerID == requesterID
	for _, row := range rows {
		if isOwner {
			status := bookingStatusBooked
			if !row.Booking.EndTime.After(now) {
				status = bookingStatusExpired
			}
			resp.Bookings = append(resp.Bookings, entities.SlotBookingInfo{
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
			continue
		}
		if row.Booking.EndTime.After(now) {
			resp.Bookings = append(resp.Bookings, entities.SlotBookingInfo{
				ID:              row.Booking.ID,
				StartTime:       row.Booking.StartTime,
				EndTime:         row.Booking.EndTime,
				DurationMinutes: row.Booking.DurationMinutes,
			})
		}
	}
	return resp, nil
}

func (s *SlotService) Update(slotID, requesterID int, req entities.SlotRequest) (*entities.SlotResponse, error) {
	slot, err := s.ownedSlot(slotID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := validateSlotRequest(req); err != nil {
		return nil, err
	}

	slot.Price = req.Price
	slot.Address = req.Address
	slot.Coordinates = req.Coordinates
	slot.Description = req.Description
	slot.VehicleType = req.VehicleType
	if req.Status != "" {
		slot.Status = req.Status
	}
	if err := s.slots.Update(slot); err != nil {
		return nil, err
	}
	return s.toResponse(slot)
}

func (s *SlotService) Delete(slotID, requesterID int) error {
	if _, err := s.ownedSlot(slotID, requesterID); err != nil {
		return err
	}
	return s.slots.Delete(slotID)
}

func (s *SlotService) ListOwned(ownerID int) ([]entities.SlotResponse, error) {
	slots, err := s.slots.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(slots)
}

func (s *SlotService) List(filter entities.SlotFilter) ([]entities.SlotResponse, error) {
	slots, err := s.slots.List(filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(slots)
}

func (s *SlotService) ownedSlot(slotID, requesterID int) (*db.ParkSlot, error) {
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
	return slot, nil
}

func (s *SlotService) toResponse(slot *db.ParkSlot) (*entities.SlotResponse, error) {
	avg, err := s.ratings.AverageForSlot(slot.ID)
	if err != nil {
		return nil, err
	}
	return &entities.SlotResponse{
		ID:          slot.ID,
		Status:      slot.Status,
		Price:       slot.Price,
		Address:     slot.Address,
		Coordinates: slot.Coordinates,
		Description: slot.Description,
		VehicleType: slot.VehicleType,
		Rating:      avg,
		CreatedAt:   slot.CreatedAt,
	}, nil
}

func (s *SlotService) toResponses(slots []db.ParkSlot) ([]entities.SlotResponse, error) {
	result := make([]entities.SlotResponse, 0, len(slots))
	for i := range slots {
		resp, err := s.toResponse(&slots[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}
