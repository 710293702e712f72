package model

import "time"

// Fitness levels recorded on a member goal.
var FitnessLevels = []string{"beginner", "intermediate", "advanced"}

// MemberGoal is a member's single current training goal.
type MemberGoal struct {
	ID              string     `json:"id" db:"id"`
	MemberID        string     `json:"memberId" db:"member_id"`
	GoalDescription *string    `json:"goalDescription" db:"goal_description"`
	TargetWeight    *float64   `json:"targetWeight" db:"target_weight"`
	TargetDate      *time.Time `json:"targetDate" db:"target_date"`
	FitnessLevel    *string    `json:"fitnessLevel" db:"fitness_level"`
	Notes           *string    `json:"notes" db:"notes"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// WeightEntry is one body-weight measurement.
type WeightEntry struct {
	ID        string    `json:"id" db:"id"`
	MemberID  string    `json:"memberId" db:"member_id"`
	Weight    float64   `json:"weight" db:"weight"`
	BodyFat   *float64  `json:"bodyFat" db:"body_fat"`
	Date      time.Time `json:"date" db:"date"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PersonalRecord is a best lift or time, kept as free text ("100kg", "5:32").
type PersonalRecord struct {
	ID        string    `json:"id" db:"id"`
	MemberID  string    `json:"memberId" db:"member_id"`
	Exercise  string    `json:"exercise" db:"exercise"`
	Value     string    `json:"value" db:"value"`
	Date      time.Time `json:"date" db:"date"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MemberProgress bundles everything shown on a member's progress page.
type MemberProgress struct {
	Member          Member           `json:"member"`
	Goal            *MemberGoal      `json:"goal"`
	WeightEntries   []WeightEntry    `json:"weightEntries"`
	PersonalRecords []PersonalRecord `json:"personalRecords"`
}
