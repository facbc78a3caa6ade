package dto

import (
	"time"

	"trs/internal/domains/calendar/model"
	"trs/shared/constant"
	gDto "trs/shared/dto"
	gModel "trs/shared/model"
	"trs/shared/timezone"
)

type SetOpenDayRequest struct {
	Date      string `json:"date"       validate:"required"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"  validate:"omitempty"`
	CloseTime string `json:"close_time" validate:"omitempty"`
}

func (c *SetOpenDayRequest) ToModel(date, openTime, closeTime time.Time, user string) model.OpenDay {
	return model.OpenDay{
		Date:      date,
		OpenTime:  openTime,
		CloseTime: closeTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type OpenDayResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	gDto.Metadata
}

func (r *OpenDayResponse) FromModel(model model.OpenDay) {
	r.ID = model.ID
	r.Date = model.Date.Format(constant.DateFormat)
	r.OpenTime = model.OpenTime.Format(constant.ClockFormat)
	r.CloseTime = model.CloseTime.Format(constant.ClockFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetOpenDaysResponse struct {
	OpenDays []OpenDayResponse `json:"open_days"`
}

func (r *GetOpenDaysResponse) FromModels(models []model.OpenDay) {
	r.OpenDays = make([]OpenDayResponse, len(models))
	for i, mod := range models {
		r.OpenDays[i].FromModel(mod)
	}
}
