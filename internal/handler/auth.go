package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/server/middleware"
	"github.com/retshidi-radebe/bzfitness/internal/service"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

// AuthHandler serves admin sign-in and admin user management.
type AuthHandler struct {
	auth      *service.AuthService
	cookies   middleware.Cookies
	validator *openapi.Validator
	logger    *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookies middleware.Cookies, validator *openapi.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		cookies:   cookies,
		validator: validator,
		logger:    logger,
	}
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and sets the session cookie.
// POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, h.validator, openapi.LoginRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, sess, err := h.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		serverError(w, r, h.logger, "login", err)
		return
	}

	h.cookies.Set(w, r, token)
	h.logger.Info("admin signed in", "username", sess.Username, "role", sess.Role)
	writeSuccess(w, "Login successful")
}

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server side.
// POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w, r)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// Me returns the caller's role and username.
// GET /api/admin/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, model.WhoAmI{Role: sess.Role, Username: sess.Username})
}

// ---------------------------------------------------------------------------
// Admin users (superadmin only)
// ---------------------------------------------------------------------------

// ListUsers returns every stored admin user, oldest first.
// GET /api/admin/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "list admin users", err)
		return
	}
	if users == nil {
		users = []model.AdminUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	Name     *string    `json:"name"`
}

// CreateUser adds an admin account.
// POST /api/admin/users
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r, h.validator, openapi.CreateUserRequest, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Username, password, and role are required"))
		return
	}

	user, err := h.auth.CreateUser(r.Context(), service.NewUser{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     nonEmpty(req.Name),
	})
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "Username already exists")
		return
	case err != nil:
		serverError(w, r, h.logger, "create admin user", err)
		return
	}

	h.logger.Info("admin user created", "username", user.Username, "role", user.Role,
		"by", callerName(r))
	writeJSON(w, http.StatusCreated, user)
}

// DeleteUser removes an admin account. The caller's own account and the
// configured superadmin cannot be removed.
// DELETE /api/admin/users/{id}
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.auth.DeleteUser(r.Context(), middleware.GetSession(r.Context()), id)
	switch {
	case errors.Is(err, service.ErrSelfDelete):
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	case errors.Is(err, service.ErrUserProtected):
		writeError(w, http.StatusBadRequest, "Cannot delete this account")
		return
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		serverError(w, r, h.logger, "delete admin user", err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
