package model

import "time"

// Session time slots.
const (
	TimeSlotMorning = "morning"
	TimeSlotEvening = "evening"
)

// SessionStart maps a time slot to its local start time.
var SessionStart = map[string]string{
	TimeSlotMorning: "06:30",
	TimeSlotEvening: "17:00",
}

// TimeSlots lists the valid time slots in day order.
func TimeSlots() []string {
	return []string{TimeSlotMorning, TimeSlotEvening}
}

// Attendance is one member check-in. Day is the calendar date of Date in
// the gym's time zone, formatted as YYYY-MM-DD; a member checks in at most
// once per (Day, TimeSlot).
type Attendance struct {
	ID         string    `json:"id" db:"id"`
	MemberID   string    `json:"memberId" db:"member_id"`
	Date       time.Time `json:"date" db:"date"`
	TimeSlot   string    `json:"timeSlot" db:"time_slot"`
	DayOfWeek  string    `json:"dayOfWeek" db:"day_of_week"`
	Day        string    `json:"day" db:"day"`
	MemberName string    `json:"memberName,omitempty" db:"member_name"`
}
