package service

import (
	"context"
	"errors"
	"testing"

	"github.com/retshidi-radebe/bzfitness/internal/config"
	"github.com/retshidi-radebe/bzfitness/internal/model"
	"github.com/retshidi-radebe/bzfitness/internal/store"
)

func newTestAuth(t *testing.T, cfg config.AuthSettings) (*AuthService, *store.Store) {
	t.Helper()
	st, err := store.Open(store.Options{})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	return NewAuthService(st, cfg), st
}

func envSuperadmin() config.AuthSettings {
	return config.AuthSettings{AdminUsername: "owner", AdminPasswordHash: HashPassword("owner-pass")}
}

func TestLoginStoredUser(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	ctx := context.Background()

	u, err := auth.CreateUser(ctx, NewUser{Username: "coach", Password: "pw", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, sess, err := auth.Login(ctx, "coach", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.UserID != u.ID || sess.Role != model.RoleAdmin || sess.IssuedAt == 0 {
		t.Errorf("session = %+v", sess)
	}

	verified, err := auth.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if *verified != *sess {
		t.Errorf("Verify = %+v, want %+v", verified, sess)
	}
}

func TestLoginEnvSuperadmin(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	ctx := context.Background()

	_, sess, err := auth.Login(ctx, "owner", "owner-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.UserID != model.EnvSuperadminID || sess.Role != model.RoleSuperadmin || sess.Username != "owner" {
		t.Errorf("session = %+v", sess)
	}
}

func TestLoginStoredUserShadowsEnvSuperadmin(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	ctx := context.Background()

	if _, err := auth.CreateUser(ctx, NewUser{Username: "owner", Password: "db-pass", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// The environment password no longer works once a stored user has the name.
	if _, _, err := auth.Login(ctx, "owner", "owner-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	_, sess, err := auth.Login(ctx, "owner", "db-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", sess.Role)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	ctx := context.Background()
	if _, err := auth.CreateUser(ctx, NewUser{Username: "coach", Password: "pw", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tests := []struct {
		name, username, password string
	}{
		{"wrong password", "coach", "nope"},
		{"unknown user", "ghost", "pw"},
		{"env wrong password", "owner", "nope"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, sess, err := auth.Login(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
			if token != "" || sess != nil {
				t.Error("failed login must not return a session")
			}
		})
	}
}

func TestLoginEnvSuperadminDisabledWithoutHash(t *testing.T) {
	// Empty hash: sha256("") must not become a usable password.
	auth, _ := newTestAuth(t, config.AuthSettings{AdminUsername: "admin"})
	if _, _, err := auth.Login(context.Background(), "admin", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginStoreFailure(t *testing.T) {
	auth, st := newTestAuth(t, envSuperadmin())
	st.Close()

	_, _, err := auth.Login(context.Background(), "owner", "owner-pass")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("store failure should surface as an internal error, got %v", err)
	}
}

func TestVerifyWithDifferentSecret(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	token, _, err := auth.Login(context.Background(), "owner", "owner-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := envSuperadmin()
	other.SessionSecret = "rotated"
	auth2, _ := newTestAuth(t, other)
	if _, err := auth2.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession after secret rotation, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	auth, st := newTestAuth(t, envSuperadmin())
	ctx := context.Background()

	name := "Coach Thabo"
	u, err := auth.CreateUser(ctx, NewUser{Username: "coach", Password: "pw", Role: model.RoleSuperadmin, Name: &name})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	stored, err := st.GetAdminUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetAdminUser: %v", err)
	}
	if stored.PasswordHash != HashPassword("pw") {
		t.Errorf("PasswordHash = %q, want sha256 of password", stored.PasswordHash)
	}

	if _, err := auth.CreateUser(ctx, NewUser{Username: "coach", Password: "x", Role: model.RoleAdmin}); !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected store.ErrConflict, got %v", err)
	}
	if _, err := auth.CreateUser(ctx, NewUser{Username: "x", Password: "x", Role: "owner"}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}

	users, err := auth.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Errorf("ListUsers = %d users, %v; want 1", len(users), err)
	}
}

func TestDeleteUserProtection(t *testing.T) {
	auth, _ := newTestAuth(t, envSuperadmin())
	ctx := context.Background()

	boss, err := auth.CreateUser(ctx, NewUser{Username: "boss", Password: "pw", Role: model.RoleSuperadmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	coach, err := auth.CreateUser(ctx, NewUser{Username: "coach", Password: "pw", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	caller := &Session{UserID: boss.ID, Username: "boss", Role: model.RoleSuperadmin}

	if err := auth.DeleteUser(ctx, caller, model.EnvSuperadminID); !errors.Is(err, ErrUserProtected) || errors.Is(err, ErrSelfDelete) {
		t.Errorf("deleting env superadmin: got %v, want ErrUserProtected", err)
	}
	if err := auth.DeleteUser(ctx, caller, boss.ID); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("deleting self: got %v, want ErrSelfDelete", err)
	}
	if err := auth.DeleteUser(ctx, caller, coach.ID); err != nil {
		t.Errorf("DeleteUser: %v", err)
	}
	if err := auth.DeleteUser(ctx, caller, coach.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleting twice: got %v, want store.ErrNotFound", err)
	}
}
