package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

// BookingsByDate lists the confirmed bookings on a date so the public
// booking form can grey out taken slots.
func (h *Handler) BookingsByDate(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListConfirmedBookingsForDate(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, bookings)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := utils.DecodeBody(r, &req, apperr.KindInvalidBookingData, "Invalid booking data"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	b, err := h.bookings.CreateBooking(r.Context(), &req)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListBookings)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetBooking)
}

func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	var req models.BookingStatusRequest
	if err := utils.ParseBody(r, &req, apperr.KindInvalidStatus, "Invalid status"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	b, err := h.bookings.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	var patch models.BookingPatch
	if err := utils.DecodeBody(r, &patch, apperr.KindInvalidBookingData, "Invalid booking data"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	b, err := h.bookings.UpdateBooking(r.Context(), id, &patch)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

// CancelBooking keeps the row and marks it cancelled.
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	b, err := h.bookings.CancelBooking(r.Context(), id)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}
