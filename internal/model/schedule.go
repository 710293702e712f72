package model

import (
	"cmp"
	"slices"
	"time"
)

// Weekdays lists the days of the week in the gym's display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ScheduleEntry is one recurring class on the weekly timetable.
type ScheduleEntry struct {
	ID        string    `json:"id" db:"id"`
	DayOfWeek string    `json:"dayOfWeek" db:"day_of_week"`
	TimeSlot  string    `json:"timeSlot" db:"time_slot"`
	Activity  string    `json:"activity" db:"activity"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DayIndex returns the position of day in Weekdays, or len(Weekdays) for
// an unknown day so that it sorts last.
func DayIndex(day string) int {
	if i := slices.Index(Weekdays, day); i >= 0 {
		return i
	}
	return len(Weekdays)
}

func slotIndex(slot string) int {
	if i := slices.Index(TimeSlots(), slot); i >= 0 {
		return i
	}
	return len(TimeSlots())
}

// SortSchedule orders entries Monday first, morning before evening.
func SortSchedule(entries []ScheduleEntry) {
	slices.SortStableFunc(entries, func(a, b ScheduleEntry) int {
		if c := cmp.Compare(DayIndex(a.DayOfWeek), DayIndex(b.DayOfWeek)); c != 0 {
			return c
		}
		return cmp.Compare(slotIndex(a.TimeSlot), slotIndex(b.TimeSlot))
	})
}
