package model

import (
	"time"
	"trs/shared/model"
)

const (
	TableName  = "table_reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldTableID       = "table_id"
	FieldTimeSlotID    = "time_slot_id"
	FieldOpenDayID     = "open_day_id"
	FieldFullName      = "full_name"
	FieldEmail         = "email"
	FieldPhoneNumber   = "phone_number"
	FieldSendReminders = "send_reminders"
	FieldComment       = "comment"
)

type TableReservation struct {
	ID            int64  `db:"id"`
	TableID       int64  `db:"table_id"`
	TimeSlotID    int64  `db:"time_slot_id"`
	OpenDayID     int64  `db:"open_day_id"`
	FullName      string `db:"full_name"`
	Email         string `db:"email"`
	PhoneNumber   string `db:"phone_number"`
	SendReminders bool   `db:"send_reminders"`
	Comment       string `db:"comment"`
	model.Metadata
}

// ReservationWithSlot carries the reservation joined with its seating,
// which is what availability checks and admin listings work on.
type ReservationWithSlot struct {
	TableReservation
	SlotDate        time.Time `db:"slot_date"`
	StartTime       time.Time `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
}

// StartMinutes is the seating start as minutes since midnight.
func (r ReservationWithSlot) StartMinutes() int {
	return r.StartTime.Hour()*60 + r.StartTime.Minute()
}

// EndMinutes is the seating end as minutes since midnight.
func (r ReservationWithSlot) EndMinutes() int {
	return r.StartMinutes() + r.DurationMinutes
}
