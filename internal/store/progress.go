package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// UpsertGoal creates or replaces the member's goal. g.MemberID selects the
// member; ID and CreatedAt are preserved when a goal already exists.
func (s *Store) UpsertGoal(ctx context.Context, g *model.MemberGoal) error {
	g.TargetDate = utcPtr(g.TargetDate)

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := memberExists(ctx, tx, g.MemberID); err != nil {
			return err
		}

		var existing model.MemberGoal
		err := tx.GetContext(ctx, &existing, tx.Rebind("SELECT * FROM member_goals WHERE member_id = ?"), g.MemberID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			t := now()
			g.ID = newID()
			g.CreatedAt = t
			g.UpdatedAt = t
			const ins = `INSERT INTO member_goals
				(id, member_id, goal_description, target_weight, target_date, fitness_level, notes, created_at, updated_at)
				VALUES
				(:id, :member_id, :goal_description, :target_weight, :target_date, :fitness_level, :notes, :created_at, :updated_at)`
			if _, err := tx.NamedExecContext(ctx, ins, g); err != nil {
				return s.wrap("insert goal", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("get goal: %w", err)
		}

		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
		g.UpdatedAt = now()
		const upd = `UPDATE member_goals SET goal_description = :goal_description,
			target_weight = :target_weight, target_date = :target_date,
			fitness_level = :fitness_level, notes = :notes, updated_at = :updated_at
			WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, upd, g); err != nil {
			return fmt.Errorf("update goal: %w", err)
		}
		return nil
	})
}

// CreateWeightEntry records a measurement; ErrNotFound means the member is
// missing.
func (s *Store) CreateWeightEntry(ctx context.Context, e *model.WeightEntry) error {
	e.ID = newID()
	e.CreatedAt = now()
	e.Date = e.Date.UTC()

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := memberExists(ctx, tx, e.MemberID); err != nil {
			return err
		}
		const q = `INSERT INTO weight_entries (id, member_id, weight, body_fat, date, notes, created_at)
			VALUES (:id, :member_id, :weight, :body_fat, :date, :notes, :created_at)`
		if _, err := tx.NamedExecContext(ctx, q, e); err != nil {
			return s.wrap("insert weight entry", err)
		}
		return nil
	})
}

// DeleteWeightEntry removes one of the member's measurements.
func (s *Store) DeleteWeightEntry(ctx context.Context, memberID, entryID string) error {
	q := s.db.Rebind("DELETE FROM weight_entries WHERE id = ? AND member_id = ?")
	res, err := s.db.ExecContext(ctx, q, entryID, memberID)
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	return affectedOne("delete weight entry", res)
}

// CreatePersonalRecord records a personal best; ErrNotFound means the
// member is missing.
func (s *Store) CreatePersonalRecord(ctx context.Context, r *model.PersonalRecord) error {
	r.ID = newID()
	r.CreatedAt = now()
	r.Date = r.Date.UTC()

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := memberExists(ctx, tx, r.MemberID); err != nil {
			return err
		}
		const q = `INSERT INTO personal_records (id, member_id, exercise, value, date, notes, created_at)
			VALUES (:id, :member_id, :exercise, :value, :date, :notes, :created_at)`
		if _, err := tx.NamedExecContext(ctx, q, r); err != nil {
			return s.wrap("insert personal record", err)
		}
		return nil
	})
}

// DeletePersonalRecord removes one of the member's records.
func (s *Store) DeletePersonalRecord(ctx context.Context, memberID, recordID string) error {
	q := s.db.Rebind("DELETE FROM personal_records WHERE id = ? AND member_id = ?")
	res, err := s.db.ExecContext(ctx, q, recordID, memberID)
	if err != nil {
		return fmt.Errorf("delete personal record: %w", err)
	}
	return affectedOne("delete personal record", res)
}

// GetProgress returns the member with its goal, weight history (oldest
// first, for charting) and personal records (newest first).
func (s *Store) GetProgress(ctx context.Context, memberID string) (*model.MemberProgress, error) {
	m, err := s.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	p := &model.MemberProgress{
		Member:          *m,
		WeightEntries:   []model.WeightEntry{},
		PersonalRecords: []model.PersonalRecord{},
	}

	var goal model.MemberGoal
	err = s.db.GetContext(ctx, &goal, s.db.Rebind("SELECT * FROM member_goals WHERE member_id = ?"), memberID)
	switch {
	case err == nil:
		p.Goal = &goal
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("get goal: %w", err)
	}

	q := s.db.Rebind("SELECT * FROM weight_entries WHERE member_id = ? ORDER BY date, id")
	if err := s.db.SelectContext(ctx, &p.WeightEntries, q, memberID); err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	q = s.db.Rebind("SELECT * FROM personal_records WHERE member_id = ? ORDER BY date DESC, id DESC")
	if err := s.db.SelectContext(ctx, &p.PersonalRecords, q, memberID); err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	return p, nil
}
