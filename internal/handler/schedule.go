package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
)

const msgScheduleNotFound = "Schedule not found"

type scheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek"`
	TimeSlot  string `json:"timeSlot"`
	Activity  string `json:"activity"`
	IsActive  *bool  `json:"isActive"`
}

type scheduleUpdateRequest struct {
	DayOfWeek *string `json:"dayOfWeek"`
	TimeSlot  *string `json:"timeSlot"`
	Activity  *string `json:"activity"`
	IsActive  *bool   `json:"isActive"`
}

// PublicSchedule returns the active classes, Monday first.
// GET /api/schedule
func (h *GymHandler) PublicSchedule(w http.ResponseWriter, r *http.Request) {
	h.listSchedule(w, r, true)
}

// ListSchedule returns the whole timetable, inactive classes included.
// GET /api/admin/schedule
func (h *GymHandler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	h.listSchedule(w, r, false)
}

func (h *GymHandler) listSchedule(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	entries, err := h.store.ListSchedule(r.Context(), activeOnly)
	if err != nil {
		serverError(w, r, h.logger, "list schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateScheduleEntry adds a class to the timetable, active unless stated.
// POST /api/admin/schedule
func (h *GymHandler) CreateScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := readJSON(r, h.validator, openapi.ScheduleRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Day of week, time slot, and activity are required"))
		return
	}

	e := &model.ScheduleEntry{
		DayOfWeek: req.DayOfWeek,
		TimeSlot:  req.TimeSlot,
		Activity:  req.Activity,
		IsActive:  true,
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if err := h.store.CreateScheduleEntry(r.Context(), e); err != nil {
		serverError(w, r, h.logger, "create schedule entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateScheduleEntry changes the fields present in the body.
// PUT /api/admin/schedule/{id}
func (h *GymHandler) UpdateScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req scheduleUpdateRequest
	if err := readJSON(r, h.validator, openapi.ScheduleUpdateRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Invalid request body"))
		return
	}

	e, err := h.store.GetScheduleEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get schedule entry", err, msgScheduleNotFound)
		return
	}
	if req.DayOfWeek != nil {
		e.DayOfWeek = *req.DayOfWeek
	}
	if req.TimeSlot != nil {
		e.TimeSlot = *req.TimeSlot
	}
	if req.Activity != nil {
		e.Activity = *req.Activity
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := h.store.UpdateScheduleEntry(r.Context(), e); err != nil {
		h.storeError(w, r, "update schedule entry", err, msgScheduleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteScheduleEntry removes a class.
// DELETE /api/admin/schedule/{id}
func (h *GymHandler) DeleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteScheduleEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, "delete schedule entry", err, msgScheduleNotFound)
		return
	}
	writeSuccess(w, "Schedule deleted successfully")
}
