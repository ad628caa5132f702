package api

import (
	"net/http"
	"strconv"

	"parko/internal/auth"
	"parko/internal/db"
	"parko/internal/entities"
	"parko/internal/httperr"
	"parko/internal/service"

	"github.com/gorilla/mux"
)

type SlotHandler struct {
	Service *service.SlotService
}

func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{Service: svc}
}

func slotID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, httperr.Validation("Invalid park slot id.")
	}
	return id, nil
}

// requireProvider rejects callers that are not slot providers.
func requireProvider(w http.ResponseWriter, r *http.Request) bool {
	if auth.Role(r) != db.RoleProvider {
		respond(w, http.StatusForbidden, "Only providers can manage park slots.", nil)
		return false
	}
	return true
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireProvider(w, r) {
		return
	}
	var req entities.SlotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	slot, err := h.Service.Create(auth.UserID(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slot Created Successfully", slot)
}

func (h *SlotHandler) Mine(w http.ResponseWriter, r *http.Request) {
	if !requireProvider(w, r) {
		return
	}
	slots, err := h.Service.ListOwned(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slots", slots)
}

func (h *SlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := slotID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	slot, err := h.Service.Get(id, auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slot Details", slot)
}

func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := slotID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req entities.SlotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	slot, err := h.Service.Update(id, auth.UserID(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slot Updated Successfully", slot)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := slotID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.Delete(id, auth.UserID(r)); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slot Deleted Successfully", nil)
}

// List is the user-facing search over all active slots.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entities.SlotFilter{
		Status:      r.URL.Query().Get("status"),
		Address:     r.URL.Query().Get("address"),
		VehicleType: r.URL.Query().Get("type"),
	}
	if priceStr := r.URL.Query().Get("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			respond(w, http.StatusBadRequest, "Invalid price filter.", nil)
			return
		}
		filter.Price = &price
	}

	slots, err := h.Service.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Park Slots", slots)
}
