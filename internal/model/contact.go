package model

import "time"

// Contact submission statuses.
const (
	ContactNew       = "new"
	ContactContacted = "contacted"
	ContactCompleted = "completed"
)

// ContactStatuses lists every valid contact submission status.
func ContactStatuses() []string {
	return []string{ContactNew, ContactContacted, ContactCompleted}
}

// ContactSubmission is an enquiry sent through the public contact form.
type ContactSubmission struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Package   string    `json:"package" db:"package"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactReceipt acknowledges a public contact form submission.
type ContactReceipt struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}
