package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retshidi-radebe/bzfitness/internal/config"
	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

var (
	// ErrInvalidCredentials covers every failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRole is returned when creating a user with an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUserProtected is returned when deleting an account that may not
	// be removed.
	ErrUserProtected = errors.New("cannot delete this account")

	// ErrSelfDelete is the ErrUserProtected case of a caller deleting its
	// own account.
	ErrSelfDelete = fmt.Errorf("%w: own account", ErrUserProtected)
)

// AuthService signs admins in and manages admin accounts.
type AuthService struct {
	store *store.Store
	codec *SessionCodec

	// Environment superadmin, checked when no stored user matches.
	envUsername string
	envHash     string

	now func() time.Time
}

// NewAuthService wires the service to st using the secret and environment
// superadmin from cfg. An empty AdminPasswordHash disables the environment
// superadmin.
func NewAuthService(st *store.Store, cfg config.AuthSettings) *AuthService {
	return &AuthService{
		store:       st,
		codec:       NewSessionCodec(cfg.SessionSecret),
		envUsername: cfg.AdminUsername,
		envHash:     cfg.AdminPasswordHash,
		now:         time.Now,
	}
}

// Login checks username and password and returns a signed session token.
// Stored users take precedence over the environment superadmin. Any
// mismatch yields ErrInvalidCredentials; store failures are returned as is.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *Session, error) {
	var sess *Session

	user, err := s.store.GetAdminUserByUsername(ctx, username)
	switch {
	case err == nil:
		if !VerifyPassword(password, user.PasswordHash) {
			return "", nil, ErrInvalidCredentials
		}
		sess = &Session{UserID: user.ID, Username: user.Username, Role: user.Role}
	case errors.Is(err, store.ErrNotFound):
		if s.envHash == "" || username != s.envUsername || !VerifyPassword(password, s.envHash) {
			return "", nil, ErrInvalidCredentials
		}
		sess = &Session{UserID: model.EnvSuperadminID, Username: s.envUsername, Role: model.RoleSuperadmin}
	default:
		return "", nil, fmt.Errorf("look up admin user: %w", err)
	}

	sess.IssuedAt = s.now().UnixMilli()
	token, err := s.codec.Encode(*sess)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return token, sess, nil
}

// Verify returns the session carried by token, or ErrInvalidSession.
// Every guarded route, API and page alike, goes through it.
func (s *AuthService) Verify(token string) (*Session, error) {
	return s.codec.Decode(token)
}

// ListUsers returns stored admin users, oldest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	return s.store.ListAdminUsers(ctx)
}

// NewUser is the input to CreateUser.
type NewUser struct {
	Username string
	Password string
	Role     model.Role
	Name     *string
}

// CreateUser stores a new admin with a hashed password. A taken username
// yields store.ErrConflict.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*model.AdminUser, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	u := &model.AdminUser{
		Username:     in.Username,
		PasswordHash: HashPassword(in.Password),
		Role:         in.Role,
		Name:         in.Name,
	}
	if err := s.store.CreateAdminUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the admin with the given id on behalf of caller. The
// environment superadmin and the caller's own account are protected.
func (s *AuthService) DeleteUser(ctx context.Context, caller *Session, id string) error {
	if id == model.EnvSuperadminID {
		return ErrUserProtected
	}
	if caller != nil && id == caller.UserID {
		return ErrSelfDelete
	}
	return s.store.DeleteAdminUser(ctx, id)
}
