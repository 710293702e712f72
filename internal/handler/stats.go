package handler

import "net/http"

// WeeklyStats returns attendance and revenue for the last seven local days.
// GET /api/admin/stats/weekly
func (h *GymHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	days, err := h.store.WeeklyStats(r.Context(), h.today())
	if err != nil {
		serverError(w, r, h.logger, "weekly stats", err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// DashboardStats returns the totals shown on the admin landing page.
// GET /api/admin/stats/dashboard
func (h *GymHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.DashboardStats(r.Context(), h.today())
	if err != nil {
		serverError(w, r, h.logger, "dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
