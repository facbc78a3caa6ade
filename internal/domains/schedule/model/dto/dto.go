package dto

import (
	"trs/internal/domains/schedule/model"
	"trs/shared/constant"
)

type TimeSlotResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (r *TimeSlotResponse) FromModel(model model.TimeSlot) {
	r.ID = model.ID
	r.Date = model.Date.Format(constant.DateFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.DurationMinutes = model.DurationMinutes
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot) {
	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}
