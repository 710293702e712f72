package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// AttendanceFilter narrows ListAttendance. Zero fields match everything.
type AttendanceFilter struct {
	MemberID string
	Day      string // YYYY-MM-DD in the gym's time zone
}

// CreateAttendance records a check-in, filling in ID. It returns
// ErrNotFound when the member does not exist and ErrConflict when the
// member already checked in for the same day and time slot.
func (s *Store) CreateAttendance(ctx context.Context, a *model.Attendance) error {
	a.ID = newID()
	a.Date = a.Date.UTC()

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := memberExists(ctx, tx, a.MemberID); err != nil {
			return err
		}
		const q = `INSERT INTO attendance (id, member_id, date, time_slot, day_of_week, day)
			VALUES (:id, :member_id, :date, :time_slot, :day_of_week, :day)`
		if _, err := tx.NamedExecContext(ctx, q, a); err != nil {
			return s.wrap("insert attendance", err)
		}
		return nil
	})
}

// ListAttendance returns matching check-ins newest first, with the
// member's name.
func (s *Store) ListAttendance(ctx context.Context, f AttendanceFilter) ([]model.Attendance, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.MemberID != "" {
		where = append(where, "a.member_id = ?")
		args = append(args, f.MemberID)
	}
	if f.Day != "" {
		where = append(where, "a.day = ?")
		args = append(args, f.Day)
	}

	q := `SELECT a.*, m.name AS member_name FROM attendance a JOIN members m ON m.id = a.member_id`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY a.date DESC, a.id DESC"

	out := []model.Attendance{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return out, nil
}

// DeleteAttendance removes one check-in.
func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM attendance WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return affectedOne("delete attendance", res)
}

// SlotCount is the number of check-ins for one day and time slot.
type SlotCount struct {
	Day      string `db:"day"`
	TimeSlot string `db:"time_slot"`
	Count    int    `db:"n"`
}

// CountAttendanceByDay counts check-ins per (day, time slot) for days in
// the inclusive range [fromDay, toDay].
func (s *Store) CountAttendanceByDay(ctx context.Context, fromDay, toDay string) ([]SlotCount, error) {
	q := s.db.Rebind(`SELECT day, time_slot, COUNT(*) AS n FROM attendance
		WHERE day >= ? AND day <= ? GROUP BY day, time_slot`)
	out := []SlotCount{}
	if err := s.db.SelectContext(ctx, &out, q, fromDay, toDay); err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}
	return out, nil
}

func memberExists(ctx context.Context, tx *sqlx.Tx, id string) error {
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind("SELECT COUNT(*) FROM members WHERE id = ?"), id); err != nil {
		return fmt.Errorf("check member: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
