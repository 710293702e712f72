package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// CreateContactSubmission stores a contact form entry with status "new".
func (s *Store) CreateContactSubmission(ctx context.Context, c *model.ContactSubmission) error {
	c.ID = newID()
	c.CreatedAt = now()
	c.Status = model.ContactNew

	const q = `INSERT INTO contact_submissions (id, name, email, phone, package, message, status, created_at)
		VALUES (:id, :name, :email, :phone, :package, :message, :status, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, q, c); err != nil {
		return s.wrap("insert contact submission", err)
	}
	return nil
}

// GetContactSubmission returns one contact submission.
func (s *Store) GetContactSubmission(ctx context.Context, id string) (*model.ContactSubmission, error) {
	var c model.ContactSubmission
	q := s.db.Rebind("SELECT * FROM contact_submissions WHERE id = ?")
	if err := s.db.GetContext(ctx, &c, q, id); err != nil {
		return nil, notFound("get contact submission", err)
	}
	return &c, nil
}

// ListContactSubmissions returns every submission, newest first.
func (s *Store) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	out := []model.ContactSubmission{}
	if err := s.db.SelectContext(ctx, &out, "SELECT * FROM contact_submissions ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return out, nil
}

// UpdateContactStatus sets a submission's follow-up status.
func (s *Store) UpdateContactStatus(ctx context.Context, id, status string) (*model.ContactSubmission, error) {
	q := s.db.Rebind("UPDATE contact_submissions SET status = ? WHERE id = ?")
	res, err := s.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	if err := affectedOne("update contact status", res); err != nil {
		return nil, err
	}
	return s.GetContactSubmission(ctx, id)
}

// DeleteContactSubmission removes one submission.
func (s *Store) DeleteContactSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM contact_submissions WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	return affectedOne("delete contact submission", res)
}

// ConvertContact creates m as a new member and marks the submission
// completed, atomically.
func (s *Store) ConvertContact(ctx context.Context, contactID string, m *model.Member) error {
	t := now()
	m.ID = newID()
	m.CreatedAt = t
	m.UpdatedAt = t
	normalizeMemberTimes(m)

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		q := tx.Rebind("UPDATE contact_submissions SET status = ? WHERE id = ?")
		res, err := tx.ExecContext(ctx, q, model.ContactCompleted, contactID)
		if err != nil {
			return fmt.Errorf("complete contact submission: %w", err)
		}
		if err := affectedOne("complete contact submission", res); err != nil {
			return err
		}
		return s.insertMember(ctx, tx, m)
	})
}
