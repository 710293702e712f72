package model

import "time"

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

// PaymentStatuses lists every valid payment status.
func PaymentStatuses() []string {
	return []string{PaymentPending, PaymentPaid, PaymentOverdue}
}

// Payment is a membership fee owed or paid by a member.
type Payment struct {
	ID         string     `json:"id" db:"id"`
	MemberID   string     `json:"memberId" db:"member_id"`
	Amount     float64    `json:"amount" db:"amount"`
	Package    string     `json:"package" db:"package"`
	Status     string     `json:"status" db:"status"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	PaidDate   *time.Time `json:"paidDate" db:"paid_date"`
	Notes      *string    `json:"notes" db:"notes"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	MemberName string     `json:"memberName,omitempty" db:"member_name"`
	IsOverdue  bool       `json:"isOverdue" db:"-"`
}

// Overdue reports whether the payment is late at now: either explicitly
// marked overdue, or still pending past its due date.
func (p *Payment) Overdue(now time.Time) bool {
	switch p.Status {
	case PaymentOverdue:
		return true
	case PaymentPending:
		return p.DueDate.Before(now)
	default:
		return false
	}
}

// NextDueDate returns the member's next payment date once a payment due at
// due has been settled: one calendar month later, normalized the way
// time.AddDate does (Jan 31 becomes Mar 3 or Mar 2).
func NextDueDate(due time.Time) time.Time {
	return due.AddDate(0, 1, 0)
}
