package store

import (
	"context"
	"fmt"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// CreateAdminUser inserts u, filling in ID and CreatedAt. It returns
// ErrConflict when the username is taken.
func (s *Store) CreateAdminUser(ctx context.Context, u *model.AdminUser) error {
	if !u.Role.Valid() {
		return fmt.Errorf("insert admin user: invalid role %q", u.Role)
	}
	u.ID = newID()
	u.CreatedAt = now()

	const q = `INSERT INTO admin_users (id, username, password_hash, role, name, created_at)
		VALUES (:id, :username, :password_hash, :role, :name, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, q, u); err != nil {
		return s.wrap("insert admin user", err)
	}
	return nil
}

// GetAdminUser returns the admin user with the given id.
func (s *Store) GetAdminUser(ctx context.Context, id string) (*model.AdminUser, error) {
	var u model.AdminUser
	q := s.db.Rebind("SELECT * FROM admin_users WHERE id = ?")
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, notFound("get admin user", err)
	}
	return &u, nil
}

// GetAdminUserByUsername returns the admin user with the given username.
func (s *Store) GetAdminUserByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var u model.AdminUser
	q := s.db.Rebind("SELECT * FROM admin_users WHERE username = ?")
	if err := s.db.GetContext(ctx, &u, q, username); err != nil {
		return nil, notFound("get admin user by username", err)
	}
	return &u, nil
}

// ListAdminUsers returns every admin user, oldest first.
func (s *Store) ListAdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	users := []model.AdminUser{}
	if err := s.db.SelectContext(ctx, &users, "SELECT * FROM admin_users ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	return users, nil
}

// DeleteAdminUser removes the admin user with the given id.
func (s *Store) DeleteAdminUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM admin_users WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}
	return affectedOne("delete admin user", res)
}

// CountAdminUsers returns the number of stored admin users.
func (s *Store) CountAdminUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM admin_users"); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}
	return n, nil
}
