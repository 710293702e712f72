package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

type attendanceRequest struct {
	MemberID  string  `json:"memberId"`
	TimeSlot  string  `json:"timeSlot"`
	DayOfWeek string  `json:"dayOfWeek"`
	Date      *string `json:"date"`
}

// ListAttendance returns check-ins newest first, optionally for one member
// or one local day.
// GET /api/admin/attendance?memberId=&date=YYYY-MM-DD
func (h *GymHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.AttendanceFilter{MemberID: q.Get("memberId")}
	if d := q.Get("date"); d != "" {
		day, err := parseTime(d, h.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		f.Day = localDay(day, h.loc)
	}

	records, err := h.store.ListAttendance(r.Context(), f)
	if err != nil {
		serverError(w, r, h.logger, "list attendance", err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateAttendance checks a member in. A member checks in once per time
// slot per local day.
// POST /api/admin/attendance
func (h *GymHandler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := readJSON(r, h.validator, openapi.AttendanceRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Member ID, time slot, and day of week are required"))
		return
	}

	at := h.now()
	if d, err := optionalTime(req.Date, h.loc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	} else if d != nil {
		at = *d
	}

	a := &model.Attendance{
		MemberID:  req.MemberID,
		Date:      at,
		TimeSlot:  req.TimeSlot,
		DayOfWeek: req.DayOfWeek,
		Day:       localDay(at, h.loc),
	}
	err := h.store.CreateAttendance(r.Context(), a)
	switch {
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusBadRequest, "Attendance already recorded for this session")
		return
	case err != nil:
		h.storeError(w, r, "create attendance", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// DeleteAttendance removes a check-in.
// DELETE /api/admin/attendance/{id}
func (h *GymHandler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, "delete attendance", err, "Attendance record not found")
		return
	}
	writeSuccess(w, "Attendance deleted successfully")
}

func localDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(store.DayLayout)
}
