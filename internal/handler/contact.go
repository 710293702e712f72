package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/notify"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
)

const msgContactNotFound = "Contact submission not found"

type contactRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Package string  `json:"package"`
	Message string  `json:"message"`
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

type convertContactRequest struct {
	PackageType     *string `json:"packageType"`
	JoinDate        *string `json:"joinDate"`
	NextPaymentDate *string `json:"nextPaymentDate"`
	AgreedToTerms   bool    `json:"agreedToTerms"`
}

// SubmitContact stores a public enquiry and notifies staff by email.
// POST /api/contact
func (h *GymHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := readJSON(r, h.validator, openapi.ContactRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	sub := &model.ContactSubmission{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   nonEmpty(req.Email),
		Package: req.Package,
		Message: req.Message,
		Status:  model.ContactNew,
	}
	if err := h.store.CreateContactSubmission(r.Context(), sub); err != nil {
		serverError(w, r, h.logger, "create contact submission", err)
		return
	}
	h.logger.Info("contact form submitted", "submission_id", sub.ID, "package", sub.Package)
	h.notifyContact(r.Context(), sub)

	writeJSON(w, http.StatusOK, model.ContactReceipt{
		Success:      true,
		Message:      "Thank you for your message! We will contact you soon.",
		SubmissionID: sub.ID,
	})
}

// notifyContact emails staff in the background. Failures are logged only.
func (h *GymHandler) notifyContact(ctx context.Context, sub *model.ContactSubmission) {
	if len(h.notifyTo) == 0 {
		return
	}
	msg, err := notify.ContactEmail(sub, h.notifyTo, h.loc)
	if err != nil {
		h.logger.Error("contact notification failed", "submission_id", sub.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		defer cancel()
		id, err := h.notifier.Send(ctx, msg)
		if err != nil {
			h.logger.Error("contact notification failed", "submission_id", sub.ID, "error", err)
			return
		}
		h.logger.Debug("contact notification sent", "submission_id", sub.ID, "message_id", id)
	}()
}

// ListContacts returns enquiries, newest first.
// GET /api/admin/contact
func (h *GymHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListContactSubmissions(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "list contact submissions", err)
		return
	}
	if subs == nil {
		subs = []model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// UpdateContactStatus records follow-up progress on an enquiry.
// PATCH /api/admin/contact/{id}
func (h *GymHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req contactStatusRequest
	if err := readJSON(r, h.validator, openapi.ContactStatusRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Status is required"))
		return
	}
	sub, err := h.store.UpdateContactStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.storeError(w, r, "update contact status", err, msgContactNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// DeleteContact removes an enquiry.
// DELETE /api/admin/contact/{id}
func (h *GymHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContactSubmission(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, "delete contact submission", err, msgContactNotFound)
		return
	}
	writeSuccess(w, "Contact submission deleted successfully")
}

// ConvertContact registers the enquirer as a member and completes the
// enquiry. The body is optional; its fields override what the enquiry
// provides.
// POST /api/admin/contact/{id}/convert
func (h *GymHandler) ConvertContact(w http.ResponseWriter, r *http.Request) {
	var req convertContactRequest
	if err := readOptionalJSON(r, h.validator, openapi.ConvertContactRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Invalid request body"))
		return
	}

	sub, err := h.store.GetContactSubmission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get contact submission", err, msgContactNotFound)
		return
	}

	now := h.now()
	m := &model.Member{
		Name:          sub.Name,
		Phone:         sub.Phone,
		Email:         sub.Email,
		PackageType:   sub.Package,
		Status:        model.MemberActive,
		JoinDate:      now,
		AgreedToTerms: req.AgreedToTerms,
	}
	if req.PackageType != nil {
		m.PackageType = *req.PackageType
	}
	if _, ok := model.LookupPackage(m.PackageType); !ok {
		writeError(w, http.StatusBadRequest, "Invalid packageType")
		return
	}
	if m.AgreedToTerms {
		m.AgreedAt = &now
	}

	join, err := optionalTime(req.JoinDate, h.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid joinDate")
		return
	}
	if join != nil {
		m.JoinDate = *join
	}
	next, err := optionalTime(req.NextPaymentDate, h.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid nextPaymentDate")
		return
	}
	if next == nil {
		t := now.AddDate(0, 1, 0)
		next = &t
	}
	m.NextPaymentDate = next

	if err := h.store.ConvertContact(r.Context(), sub.ID, m); err != nil {
		h.storeError(w, r, "convert contact submission", err, msgContactNotFound)
		return
	}
	h.logger.Info("contact converted to member", "submission_id", sub.ID, "member_id", m.ID, "by", callerName(r))
	writeJSON(w, http.StatusCreated, m)
}
