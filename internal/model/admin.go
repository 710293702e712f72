package model

import "time"

// EnvSuperadminID is the fixed user id of the superadmin defined by
// deployment configuration. It never exists in the admin_users table.
const EnvSuperadminID = "env-superadmin"

// AdminUser is a dashboard account stored in the admin_users table.
// Passwords are stored as unsalted SHA-256 hex digests.
type AdminUser struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // never expose
	Role         Role      `json:"role" db:"role"`
	Name         *string   `json:"name" db:"name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
