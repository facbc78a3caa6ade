package dto

import (
	"trs/internal/domains/reservation/model"
	tableDto "trs/internal/domains/table/model/dto"
	"trs/shared"
	"trs/shared/constant"
	gDto "trs/shared/dto"
	gModel "trs/shared/model"
	"trs/shared/timezone"
)

type ReserveRequest struct {
	TableID       int64  `json:"table_id"      validate:"required"`
	TimeSlotID    int64  `json:"time_slot_id"  validate:"required"`
	FullName      string `json:"full_name"     validate:"required,max=100"`
	Email         string `json:"email"         validate:"omitempty,max=100"`
	PhoneNumber   string `json:"phone_number"  validate:"omitempty,max=20"`
	SendReminders bool   `json:"send_reminders"`
	Comment       string `json:"comment"       validate:"omitempty,max=500"`
}

func (c *ReserveRequest) ToModel(openDayID int64, user string) model.TableReservation {
	return model.TableReservation{
		TableID:       c.TableID,
		TimeSlotID:    c.TimeSlotID,
		OpenDayID:     openDayID,
		FullName:      c.FullName,
		Email:         c.Email,
		PhoneNumber:   c.PhoneNumber,
		SendReminders: c.SendReminders,
		Comment:       c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReservationResponse struct {
	ID            int64  `json:"id"`
	TableID       int64  `json:"table_id"`
	TimeSlotID    int64  `json:"time_slot_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	SendReminders bool   `json:"send_reminders"`
	Comment       string `json:"comment"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.ReservationWithSlot) {
	r.ID = model.ID
	r.TableID = model.TableID
	r.TimeSlotID = model.TimeSlotID
	r.Date = model.SlotDate.Format(constant.DateFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.FullName = model.FullName
	r.Email = model.Email
	r.PhoneNumber = model.PhoneNumber
	r.SendReminders = model.SendReminders
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.ReservationWithSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type GetAvailableTablesResponse struct {
	TimeSlotID int64                    `json:"time_slot_id"`
	Tables     []tableDto.TableResponse `json:"tables"`
}

// ReservationCreatedEvent is the payload published after a booking commits.
// The notifier consumes it to send confirmations and reminders.
type ReservationCreatedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	TableID       int64  `json:"table_id"`
	TimeSlotID    int64  `json:"time_slot_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	SendReminders bool   `json:"send_reminders"`
}
