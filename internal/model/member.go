package model

import "time"

// Member statuses.
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
)

// Member is a registered gym member.
type Member struct {
	ID                       string     `json:"id" db:"id"`
	Name                     string     `json:"name" db:"name"`
	Phone                    string     `json:"phone" db:"phone"`
	Email                    *string    `json:"email" db:"email"`
	DateOfBirth              *time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender                   *string    `json:"gender" db:"gender"`
	Address                  *string    `json:"address" db:"address"`
	EmergencyContactName     *string    `json:"emergencyContactName" db:"emergency_contact_name"`
	EmergencyContactPhone    *string    `json:"emergencyContactPhone" db:"emergency_contact_phone"`
	EmergencyContactRelation *string    `json:"emergencyContactRelation" db:"emergency_contact_relation"`
	MedicalConditions        *string    `json:"medicalConditions" db:"medical_conditions"`
	Injuries                 *string    `json:"injuries" db:"injuries"`
	PackageType              string     `json:"packageType" db:"package_type"`
	Status                   string     `json:"status" db:"status"`
	JoinDate                 time.Time  `json:"joinDate" db:"join_date"`
	NextPaymentDate          *time.Time `json:"nextPaymentDate" db:"next_payment_date"`
	AgreedToTerms            bool       `json:"agreedToTerms" db:"agreed_to_terms"`
	AgreedAt                 *time.Time `json:"agreedAt" db:"agreed_at"`
	CreatedAt                time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time  `json:"updatedAt" db:"updated_at"`
}

// Age returns the member's age in whole years at now, or -1 when the date
// of birth is unknown.
func (m *Member) Age(now time.Time) int {
	if m.DateOfBirth == nil {
		return -1
	}
	dob := *m.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// MemberSummary is a member row as shown in the member list.
type MemberSummary struct {
	Member
	AttendanceCount int `json:"attendanceCount" db:"attendance_count"`
	PaymentCount    int `json:"paymentCount" db:"payment_count"`
}

// MemberDetail is a member with recent attendance and full payment history.
type MemberDetail struct {
	Member
	Attendances []Attendance `json:"attendances"`
	Payments    []Payment    `json:"payments"`
}
