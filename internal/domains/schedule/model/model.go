package model

import (
	"time"
	"trs/shared/model"
)

const (
	TableName  = "time_slots"
	EntityName = "time slot"

	FieldID              = "id"
	FieldSlotDate        = "slot_date"
	FieldStartTime       = "start_time"
	FieldDurationMinutes = "duration_minutes"
)

// TimeSlot is a bookable seating on a given date. A party seated at
// StartTime occupies its table for DurationMinutes.
type TimeSlot struct {
	ID              int64     `db:"id"`
	Date            time.Time `db:"slot_date"`
	StartTime       time.Time `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
	model.Metadata
}

// StartMinutes is the slot start as minutes since midnight.
func (t TimeSlot) StartMinutes() int {
	return t.StartTime.Hour()*60 + t.StartTime.Minute()
}

// EndMinutes is the slot end as minutes since midnight. Occupation is
// treated as the half-open interval [start, end).
func (t TimeSlot) EndMinutes() int {
	return t.StartMinutes() + t.DurationMinutes
}

// Overlaps reports whether two seatings on the same date occupy a table
// at the same moment.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.StartMinutes() < other.EndMinutes() && other.StartMinutes() < t.EndMinutes()
}
