package api

import (
	"net/http"

	"parko/internal/auth"
	"parko/internal/entities"
	"parko/internal/service"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.Service.Register(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "User Registered Successfully", user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.Service.Login(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Token Obtained Successfully", user)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Get(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "User Details", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entities.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.Service.Update(auth.UserID(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "User Details Updated Successfully", user)
}
