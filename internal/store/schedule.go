package store

import (
	"context"
	"fmt"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// CreateScheduleEntry inserts e, filling in ID and timestamps.
func (s *Store) CreateScheduleEntry(ctx context.Context, e *model.ScheduleEntry) error {
	t := now()
	e.ID = newID()
	e.CreatedAt = t
	e.UpdatedAt = t

	const q = `INSERT INTO schedules (id, day_of_week, time_slot, activity, is_active, created_at, updated_at)
		VALUES (:id, :day_of_week, :time_slot, :activity, :is_active, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, q, e); err != nil {
		return s.wrap("insert schedule entry", err)
	}
	return nil
}

// GetScheduleEntry returns one timetable entry.
func (s *Store) GetScheduleEntry(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	q := s.db.Rebind("SELECT * FROM schedules WHERE id = ?")
	if err := s.db.GetContext(ctx, &e, q, id); err != nil {
		return nil, notFound("get schedule entry", err)
	}
	return &e, nil
}

// ListSchedule returns timetable entries in week order. With activeOnly,
// inactive entries are left out.
func (s *Store) ListSchedule(ctx context.Context, activeOnly bool) ([]model.ScheduleEntry, error) {
	q := "SELECT * FROM schedules"
	var args []interface{}
	if activeOnly {
		q += " WHERE is_active = ?"
		args = append(args, true)
	}

	entries := []model.ScheduleEntry{}
	if err := s.db.SelectContext(ctx, &entries, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	model.SortSchedule(entries)
	return entries, nil
}

// UpdateScheduleEntry overwrites e's editable columns.
func (s *Store) UpdateScheduleEntry(ctx context.Context, e *model.ScheduleEntry) error {
	e.UpdatedAt = now()
	const q = `UPDATE schedules SET day_of_week = :day_of_week, time_slot = :time_slot,
		activity = :activity, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := s.db.NamedExecContext(ctx, q, e)
	if err != nil {
		return fmt.Errorf("update schedule entry: %w", err)
	}
	return affectedOne("update schedule entry", res)
}

// DeleteScheduleEntry removes one timetable entry.
func (s *Store) DeleteScheduleEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM schedules WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return affectedOne("delete schedule entry", res)
}
