package api

import (
	"net/http"

	"parko/internal/auth"
	"parko/internal/entities"
	"parko/internal/service"
)

type RatingHandler struct {
	Service *service.RatingService
}

func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req entities.RatingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BookingID == 0 || req.Rating == 0 {
		respond(w, http.StatusBadRequest, "Please provide all required fields.", nil)
		return
	}
	if err := h.Service.RateSlot(auth.UserID(r), req.BookingID, req.Rating); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slot Rated Successfully", nil)
}
