package handlers

import (
	"net/http"
	"strconv"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

// locations

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListLocations)
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetLocation)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid location data", (*models.LocationRequest).Location, h.store.CreateLocation)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid location data", h.store.UpdateLocation)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Location", h.store.DeleteLocation)
}

// tables

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListTables)
}

func (h *Handler) ListAllTables(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListAllTables)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetTable)
}

func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid table data", (*models.TableRequest).Table, h.store.CreateTable)
}

func (h *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid table data", h.store.UpdateTable)
}

func (h *Handler) MoveTable(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	var pos models.PositionRequest
	if err := utils.ParseBody(r, &pos, apperr.KindValidation, "Invalid position"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	table, err := h.store.UpdateTable(r.Context(), id, &models.TablePatch{XPosition: pos.XPosition, YPosition: pos.YPosition})
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, table)
}

func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Table", h.store.DeleteTable)
}

// floor plan

func (h *Handler) ListFloorPlanElements(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("locationId")
	if raw == "" {
		listEntities(w, r, h.store.ListFloorPlanElements)
		return
	}

	locationID, err := parseUUIDParam(raw, "locationId")
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	elements, err := h.store.ListFloorPlanElementsByLocation(r.Context(), locationID)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, elements)
}

func (h *Handler) GetFloorPlanElement(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetFloorPlanElement)
}

func (h *Handler) CreateFloorPlanElement(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid floor plan element data", (*models.FloorPlanElementRequest).Element, h.store.CreateFloorPlanElement)
}

func (h *Handler) UpdateFloorPlanElement(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid floor plan element data", h.store.UpdateFloorPlanElement)
}

func (h *Handler) MoveFloorPlanElement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	var pos models.PositionRequest
	if err := utils.ParseBody(r, &pos, apperr.KindValidation, "Invalid position"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	element, err := h.store.UpdateFloorPlanElement(r.Context(), id, &models.FloorPlanElementPatch{XPosition: pos.XPosition, YPosition: pos.YPosition})
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, element)
}

func (h *Handler) DeleteFloorPlanElement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	if err := h.store.DeleteFloorPlanElement(r.Context(), id); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Availability lists tables at a location that seat the party, each flagged
// with whether the requested time is free on that date.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var fields []apperr.FieldError
	locationID, err := parseUUIDParam(q.Get("locationId"), "locationId")
	if err != nil {
		fields = append(fields, apperr.FieldError{Path: "locationId", Message: "Must be a valid UUID"})
	}
	partySize, convErr := strconv.Atoi(q.Get("partySize"))
	if convErr != nil || partySize < 1 {
		fields = append(fields, apperr.FieldError{Path: "partySize", Message: "Must be greater than or equal to 1"})
	}
	date := q.Get("date")
	if date == "" {
		fields = append(fields, apperr.FieldError{Path: "date", Message: "Required"})
	}
	if len(fields) > 0 {
		utils.RespondError(w, r, apperr.Validation(apperr.KindValidation, "Invalid availability query", fields))
		return
	}

	tables, err := h.bookings.Availability(r.Context(), locationID, partySize, date, q.Get("time"))
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, tables)
}
