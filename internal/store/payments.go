package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// PaymentFilter narrows ListPayments. Status "overdue" selects payments
// that are late at Now rather than only those explicitly marked overdue.
type PaymentFilter struct {
	MemberID string
	Status   string
	Now      time.Time
}

// CreatePayment inserts p, filling in ID and timestamps. A payment created
// as paid gets PaidDate (when unset) and advances the member's next payment
// date, in the same transaction. ErrNotFound means the member is missing.
func (s *Store) CreatePayment(ctx context.Context, p *model.Payment) error {
	t := now()
	p.ID = newID()
	p.CreatedAt = t
	p.UpdatedAt = t
	p.DueDate = p.DueDate.UTC()
	if p.Status == model.PaymentPaid && p.PaidDate == nil {
		p.PaidDate = &t
	}
	p.PaidDate = utcPtr(p.PaidDate)

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := memberExists(ctx, tx, p.MemberID); err != nil {
			return err
		}
		const q = `INSERT INTO payments
			(id, member_id, amount, package, status, due_date, paid_date, notes, created_at, updated_at)
			VALUES
			(:id, :member_id, :amount, :package, :status, :due_date, :paid_date, :notes, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, q, p); err != nil {
			return s.wrap("insert payment", err)
		}
		if p.Status == model.PaymentPaid {
			return s.advanceNextPayment(ctx, tx, p)
		}
		return nil
	})
}

// GetPayment returns a payment with its member's name.
func (s *Store) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	var p model.Payment
	q := s.db.Rebind(`SELECT p.*, m.name AS member_name
		FROM payments p JOIN members m ON m.id = p.member_id WHERE p.id = ?`)
	if err := s.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, notFound("get payment", err)
	}
	return &p, nil
}

// ListPayments returns matching payments, latest due date first, with the
// member's name and IsOverdue computed at f.Now.
func (s *Store) ListPayments(ctx context.Context, f PaymentFilter) ([]model.Payment, error) {
	if f.Now.IsZero() {
		f.Now = now()
	}
	var (
		where []string
		args  []interface{}
	)
	if f.MemberID != "" {
		where = append(where, "p.member_id = ?")
		args = append(args, f.MemberID)
	}
	switch f.Status {
	case "":
	case model.PaymentOverdue:
		where = append(where, "(p.status = ? OR (p.status = ? AND p.due_date < ?))")
		args = append(args, model.PaymentOverdue, model.PaymentPending, f.Now.UTC())
	default:
		where = append(where, "p.status = ?")
		args = append(args, f.Status)
	}

	q := `SELECT p.*, m.name AS member_name FROM payments p JOIN members m ON m.id = p.member_id`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.due_date DESC, p.id DESC"

	out := []model.Payment{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	for i := range out {
		out[i].IsOverdue = out[i].Overdue(f.Now)
	}
	return out, nil
}

// PaymentUpdate is the set of mutable payment fields. A nil Notes leaves
// the notes unchanged.
type PaymentUpdate struct {
	Status string
	Notes  *string
}

// UpdatePayment changes a payment's status. Marking it paid stamps PaidDate
// with now and advances the member's next payment date to one month after
// the due date; any other status clears PaidDate.
func (s *Store) UpdatePayment(ctx context.Context, id string, u PaymentUpdate) (*model.Payment, error) {
	var p model.Payment
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		q := tx.Rebind("SELECT * FROM payments WHERE id = ?")
		if err := tx.GetContext(ctx, &p, q, id); err != nil {
			return notFound("get payment", err)
		}

		t := now()
		p.Status = u.Status
		p.UpdatedAt = t
		if u.Notes != nil {
			p.Notes = u.Notes
		}
		if p.Status == model.PaymentPaid {
			p.PaidDate = &t
		} else {
			p.PaidDate = nil
		}

		const upd = `UPDATE payments SET status = :status, paid_date = :paid_date, notes = :notes,
			updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, upd, &p); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		if p.Status == model.PaymentPaid {
			return s.advanceNextPayment(ctx, tx, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPayment(ctx, id)
}

// DeletePayment removes a payment.
func (s *Store) DeletePayment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM payments WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return affectedOne("delete payment", res)
}

// PaidSince returns paid payments whose paid date is at or after since.
func (s *Store) PaidSince(ctx context.Context, since time.Time) ([]model.Payment, error) {
	q := s.db.Rebind("SELECT * FROM payments WHERE status = ? AND paid_date >= ? ORDER BY paid_date")
	out := []model.Payment{}
	if err := s.db.SelectContext(ctx, &out, q, model.PaymentPaid, since.UTC()); err != nil {
		return nil, fmt.Errorf("paid payments: %w", err)
	}
	return out, nil
}

// advanceNextPayment moves the member's next payment date one calendar
// month, in the gym's time zone, past p's due date.
func (s *Store) advanceNextPayment(ctx context.Context, tx *sqlx.Tx, p *model.Payment) error {
	next := model.NextDueDate(p.DueDate.In(s.loc)).UTC()
	q := tx.Rebind("UPDATE members SET next_payment_date = ?, updated_at = ? WHERE id = ?")
	if _, err := tx.ExecContext(ctx, q, next, now(), p.MemberID); err != nil {
		return fmt.Errorf("advance next payment date: %w", err)
	}
	return nil
}
