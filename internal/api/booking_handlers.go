package api

import (
	"net/http"
	"strconv"
	"time"

	"parko/internal/auth"
	"parko/internal/entities"
	"parko/internal/service"

	"github.com/gorilla/mux"
)

// timeLayout matches what booking clients send: local wall-clock time
// without a zone offset.
const timeLayout = "2006-01-02T15:04:05"

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ParkSlotID == 0 || req.StartTime == "" || req.EndTime == "" {
		respond(w, http.StatusBadRequest, "Please provide all required fields.", nil)
		return
	}

	start, err := time.ParseInLocation(timeLayout, req.StartTime, time.UTC)
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid start_time.", nil)
		return
	}
	end, err := time.ParseInLocation(timeLayout, req.EndTime, time.UTC)
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid end_time.", nil)
		return
	}

	result, err := h.Service.CreateBooking(r.Context(), auth.UserID(r), req.ParkSlotID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Slot Booked Successfully", result)
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListUserBookings(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Bookings", bookings)
}

// SlotBookings lists every confirmed booking of a slot to its owner.
func (h *BookingHandler) SlotBookings(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid park slot id.", nil)
		return
	}
	bookings, err := h.Service.ListSlotBookings(slotID, auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "All Bookings of Park Slot", bookings)
}
