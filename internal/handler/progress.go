package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
)

type goalRequest struct {
	GoalDescription *string  `json:"goalDescription"`
	TargetWeight    *float64 `json:"targetWeight"`
	TargetDate      *string  `json:"targetDate"`
	FitnessLevel    *string  `json:"fitnessLevel"`
	Notes           *string  `json:"notes"`
}

type weightRequest struct {
	Weight  float64  `json:"weight"`
	BodyFat *float64 `json:"bodyFat"`
	Date    *string  `json:"date"`
	Notes   *string  `json:"notes"`
}

type recordRequest struct {
	Exercise string  `json:"exercise"`
	Value    string  `json:"value"`
	Date     *string `json:"date"`
	Notes    *string `json:"notes"`
}

// GetProgress returns a member's goal, weight history and personal records.
// GET /api/admin/members/{id}/progress
func (h *GymHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get progress", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetGoal creates or replaces the member's goal.
// PUT /api/admin/members/{id}/goal
func (h *GymHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := readJSON(r, h.validator, openapi.GoalRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Invalid request body"))
		return
	}
	target, err := optionalTime(req.TargetDate, h.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid targetDate")
		return
	}

	g := &model.MemberGoal{
		MemberID:        chi.URLParam(r, "id"),
		GoalDescription: nonEmpty(req.GoalDescription),
		TargetWeight:    req.TargetWeight,
		TargetDate:      target,
		FitnessLevel:    nonEmpty(req.FitnessLevel),
		Notes:           nonEmpty(req.Notes),
	}
	if err := h.store.UpsertGoal(r.Context(), g); err != nil {
		h.storeError(w, r, "set goal", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// AddWeight records a body-weight measurement, dated now unless given.
// POST /api/admin/members/{id}/weight
func (h *GymHandler) AddWeight(w http.ResponseWriter, r *http.Request) {
	const msgRequired = "Weight is required"
	var req weightRequest
	if err := readJSON(r, h.validator, openapi.WeightRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgRequired))
		return
	}
	if req.Weight <= 0 {
		writeError(w, http.StatusBadRequest, msgRequired)
		return
	}
	date, ok := h.entryDate(w, req.Date)
	if !ok {
		return
	}

	e := &model.WeightEntry{
		MemberID: chi.URLParam(r, "id"),
		Weight:   req.Weight,
		BodyFat:  req.BodyFat,
		Date:     date,
		Notes:    nonEmpty(req.Notes),
	}
	if err := h.store.CreateWeightEntry(r.Context(), e); err != nil {
		h.storeError(w, r, "add weight entry", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// DeleteWeight removes one of the member's measurements.
// DELETE /api/admin/members/{id}/weight/{entryId}
func (h *GymHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteWeightEntry(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "entryId"))
	if err != nil {
		h.storeError(w, r, "delete weight entry", err, "Weight entry not found")
		return
	}
	writeSuccess(w, "Weight entry deleted")
}

// AddRecord records a personal best, dated now unless given.
// POST /api/admin/members/{id}/records
func (h *GymHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := readJSON(r, h.validator, openapi.RecordRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Exercise and value are required"))
		return
	}
	date, ok := h.entryDate(w, req.Date)
	if !ok {
		return
	}

	rec := &model.PersonalRecord{
		MemberID: chi.URLParam(r, "id"),
		Exercise: req.Exercise,
		Value:    req.Value,
		Date:     date,
		Notes:    nonEmpty(req.Notes),
	}
	if err := h.store.CreatePersonalRecord(r.Context(), rec); err != nil {
		h.storeError(w, r, "add personal record", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DeleteRecord removes one of the member's personal records.
// DELETE /api/admin/members/{id}/records/{recordId}
func (h *GymHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeletePersonalRecord(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "recordId"))
	if err != nil {
		h.storeError(w, r, "delete personal record", err, "Personal record not found")
		return
	}
	writeSuccess(w, "Personal record deleted")
}

// entryDate parses an optional entry date, defaulting to now. It answers
// 400 itself and returns false when the date is unreadable.
func (h *GymHandler) entryDate(w http.ResponseWriter, s *string) (t time.Time, ok bool) {
	d, err := optionalTime(s, h.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return t, false
	}
	if d == nil {
		return h.now(), true
	}
	return *d, true
}
