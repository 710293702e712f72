package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
)

const (
	msgMemberRequired = "Name, phone, and package type are required"
	msgMemberNotFound = "Member not found"
)

type memberRequest struct {
	Name                     string  `json:"name"`
	Phone                    string  `json:"phone"`
	PackageType              string  `json:"packageType"`
	Email                    *string `json:"email"`
	DateOfBirth              *string `json:"dateOfBirth"`
	Gender                   *string `json:"gender"`
	Address                  *string `json:"address"`
	EmergencyContactName     *string `json:"emergencyContactName"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone"`
	EmergencyContactRelation *string `json:"emergencyContactRelation"`
	MedicalConditions        *string `json:"medicalConditions"`
	Injuries                 *string `json:"injuries"`
	Status                   *string `json:"status"`
	JoinDate                 *string `json:"joinDate"`
	NextPaymentDate          *string `json:"nextPaymentDate"`
	AgreedToTerms            bool    `json:"agreedToTerms"`
}

// apply copies the request onto m. Dates that fail to parse are reported
// by name.
func (req *memberRequest) apply(h *GymHandler, m *model.Member) (badField string) {
	dob, err := optionalTime(req.DateOfBirth, h.loc)
	if err != nil {
		return "dateOfBirth"
	}
	join, err := optionalTime(req.JoinDate, h.loc)
	if err != nil {
		return "joinDate"
	}
	next, err := optionalTime(req.NextPaymentDate, h.loc)
	if err != nil {
		return "nextPaymentDate"
	}

	m.Name = req.Name
	m.Phone = req.Phone
	m.PackageType = req.PackageType
	m.Email = nonEmpty(req.Email)
	m.DateOfBirth = dob
	m.Gender = nonEmpty(req.Gender)
	m.Address = nonEmpty(req.Address)
	m.EmergencyContactName = nonEmpty(req.EmergencyContactName)
	m.EmergencyContactPhone = nonEmpty(req.EmergencyContactPhone)
	m.EmergencyContactRelation = nonEmpty(req.EmergencyContactRelation)
	m.MedicalConditions = nonEmpty(req.MedicalConditions)
	m.Injuries = nonEmpty(req.Injuries)
	m.NextPaymentDate = next
	if join != nil {
		m.JoinDate = *join
	}
	if req.Status != nil && *req.Status != "" {
		m.Status = *req.Status
	}

	// agreedAt records the first agreement only.
	if req.AgreedToTerms && !m.AgreedToTerms {
		t := h.now()
		m.AgreedAt = &t
	}
	m.AgreedToTerms = req.AgreedToTerms
	return ""
}

// ListMembers returns every member, newest first, with activity counts.
// GET /api/admin/members
func (h *GymHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListMembers(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "list members", err)
		return
	}
	if members == nil {
		members = []model.MemberSummary{}
	}
	writeJSON(w, http.StatusOK, members)
}

// CreateMember registers a member. Join date defaults to now and the first
// payment falls due a month later.
// POST /api/admin/members
func (h *GymHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := readJSON(r, h.validator, openapi.MemberRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgMemberRequired))
		return
	}

	now := h.now()
	m := &model.Member{Status: model.MemberActive, JoinDate: now}
	if field := req.apply(h, m); field != "" {
		writeError(w, http.StatusBadRequest, "Invalid "+field)
		return
	}
	if m.NextPaymentDate == nil {
		next := now.AddDate(0, 1, 0)
		m.NextPaymentDate = &next
	}

	if err := h.store.CreateMember(r.Context(), m); err != nil {
		serverError(w, r, h.logger, "create member", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// GetMember returns a member with recent attendance and payments.
// GET /api/admin/members/{id}
func (h *GymHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	detail, err := h.store.GetMemberDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get member", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateMember replaces a member's editable fields.
// PUT /api/admin/members/{id}
func (h *GymHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := readJSON(r, h.validator, openapi.MemberRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgMemberRequired))
		return
	}

	m, err := h.store.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get member", err, msgMemberNotFound)
		return
	}
	if field := req.apply(h, m); field != "" {
		writeError(w, http.StatusBadRequest, "Invalid "+field)
		return
	}

	if err := h.store.UpdateMember(r.Context(), m); err != nil {
		h.storeError(w, r, "update member", err, msgMemberNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMember removes a member and all of their history.
// DELETE /api/admin/members/{id}
func (h *GymHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteMember(r.Context(), id); err != nil {
		h.storeError(w, r, "delete member", err, msgMemberNotFound)
		return
	}
	h.logger.Info("member deleted", "member_id", id, "by", callerName(r))
	writeSuccess(w, "Member deleted successfully")
}

// ListPackages returns the membership plan catalogue.
// GET /api/packages
func (h *GymHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Packages)
}
