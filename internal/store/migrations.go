package store

import (
	"fmt"
	"strings"

	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
)

// migrations are applied in order on every start. Column types are
// {placeholders} expanded per dialect; foreign keys are declared at table
// level because MySQL ignores inline column REFERENCES.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id {id} PRIMARY KEY,
		username {str} NOT NULL UNIQUE,
		password_hash {str} NOT NULL,
		role {str} NOT NULL CHECK (role IN ('admin', 'superadmin')),
		name {text},
		created_at {time} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS members (
		id {id} PRIMARY KEY,
		name {text} NOT NULL,
		phone {str} NOT NULL,
		email {text},
		date_of_birth {time},
		gender {str},
		address {text},
		emergency_contact_name {text},
		emergency_contact_phone {str},
		emergency_contact_relation {str},
		medical_conditions {text},
		injuries {text},
		package_type {str} NOT NULL,
		status {str} NOT NULL,
		join_date {time} NOT NULL,
		next_payment_date {time},
		agreed_to_terms {bool} NOT NULL DEFAULT {false},
		agreed_at {time},
		created_at {time} NOT NULL,
		updated_at {time} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id {id} PRIMARY KEY,
		member_id {id} NOT NULL,
		date {time} NOT NULL,
		time_slot {str} NOT NULL,
		day_of_week {str} NOT NULL,
		day {str} NOT NULL,
		UNIQUE (member_id, time_slot, day),
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id {id} PRIMARY KEY,
		member_id {id} NOT NULL,
		amount {real} NOT NULL,
		package {str} NOT NULL,
		status {str} NOT NULL,
		due_date {time} NOT NULL,
		paid_date {time},
		notes {text},
		created_at {time} NOT NULL,
		updated_at {time} NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id {id} PRIMARY KEY,
		day_of_week {str} NOT NULL,
		time_slot {str} NOT NULL,
		activity {text} NOT NULL,
		is_active {bool} NOT NULL DEFAULT {true},
		created_at {time} NOT NULL,
		updated_at {time} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id {id} PRIMARY KEY,
		name {text} NOT NULL,
		email {text},
		phone {str} NOT NULL,
		package {str} NOT NULL,
		message {text} NOT NULL,
		status {str} NOT NULL,
		created_at {time} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS member_goals (
		id {id} PRIMARY KEY,
		member_id {id} NOT NULL UNIQUE,
		goal_description {text},
		target_weight {real},
		target_date {time},
		fitness_level {str},
		notes {text},
		created_at {time} NOT NULL,
		updated_at {time} NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS weight_entries (
		id {id} PRIMARY KEY,
		member_id {id} NOT NULL,
		weight {real} NOT NULL,
		body_fat {real},
		date {time} NOT NULL,
		notes {text},
		created_at {time} NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS personal_records (
		id {id} PRIMARY KEY,
		member_id {id} NOT NULL,
		exercise {str} NOT NULL,
		value {str} NOT NULL,
		date {time} NOT NULL,
		notes {text},
		created_at {time} NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX idx_members_created_at ON members(created_at)`,
	`CREATE INDEX idx_attendance_day ON attendance(day)`,
	`CREATE INDEX idx_payments_due_date ON payments(due_date)`,
	`CREATE INDEX idx_payments_paid_date ON payments(paid_date)`,
}

// SchemaVersion is the number of migrations this build applies.
func SchemaVersion() int {
	return len(migrations)
}

func (s *Store) migrate() error {
	for _, m := range migrations {
		ddl := dialect.Expand(s.dialect, m)
		if _, err := s.db.Exec(ddl); err != nil {
			// MySQL has no CREATE INDEX IF NOT EXISTS; treat an existing
			// index as a no-op on every engine.
			msg := err.Error()
			if strings.Contains(msg, "already exists") || strings.Contains(msg, "Duplicate key name") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, ddl)
		}
	}
	return nil
}
