package handler

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

const msgPaymentNotFound = "Payment not found"

type paymentRequest struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
	Package  string  `json:"package"`
	DueDate  string  `json:"dueDate"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes"`
}

type paymentUpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// ListPayments returns payments, latest due date first. status=overdue
// selects every late payment, marked or not.
// GET /api/admin/payments?memberId=&status=
func (h *GymHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.PaymentFilter{MemberID: q.Get("memberId"), Status: q.Get("status"), Now: h.now()}
	if f.Status != "" && !slices.Contains(model.PaymentStatuses(), f.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	payments, err := h.store.ListPayments(r.Context(), f)
	if err != nil {
		serverError(w, r, h.logger, "list payments", err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// CreatePayment records a payment. A payment recorded as paid moves the
// member's next payment date a month past its due date.
// POST /api/admin/payments
func (h *GymHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := readJSON(r, h.validator, openapi.PaymentRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Member ID, amount, package, and due date are required"))
		return
	}
	due, err := parseTime(req.DueDate, h.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dueDate")
		return
	}

	p := &model.Payment{
		MemberID: req.MemberID,
		Amount:   req.Amount,
		Package:  req.Package,
		Status:   req.Status,
		DueDate:  due,
		Notes:    nonEmpty(req.Notes),
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	if err := h.store.CreatePayment(r.Context(), p); err != nil {
		h.storeError(w, r, "create payment", err, msgMemberNotFound)
		return
	}
	h.writePayment(w, r, p.ID, http.StatusCreated)
}

// UpdatePayment changes a payment's status and notes.
// PUT /api/admin/payments/{id}
func (h *GymHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentUpdateRequest
	if err := readJSON(r, h.validator, openapi.PaymentUpdateRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Status is required"))
		return
	}

	p, err := h.store.UpdatePayment(r.Context(), chi.URLParam(r, "id"), store.PaymentUpdate{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		h.storeError(w, r, "update payment", err, msgPaymentNotFound)
		return
	}
	p.IsOverdue = p.Overdue(h.now())
	writeJSON(w, http.StatusOK, p)
}

// DeletePayment removes a payment. The member's next payment date is left
// as it is.
// DELETE /api/admin/payments/{id}
func (h *GymHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, "delete payment", err, msgPaymentNotFound)
		return
	}
	writeSuccess(w, "Payment deleted successfully")
}

// writePayment reloads a payment with its member's name.
func (h *GymHandler) writePayment(w http.ResponseWriter, r *http.Request, id string, status int) {
	p, err := h.store.GetPayment(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get payment", err, msgPaymentNotFound)
		return
	}
	p.IsOverdue = p.Overdue(h.now())
	writeJSON(w, status, p)
}
