package service

import (
	"net/http"
	"time"

	"trs/internal/domains/schedule/model"
	"trs/shared/failure"
	gModel "trs/shared/model"
	"trs/shared/timezone"
)

var (
	ErrInvalidWindow   = &failure.Failure{Code: http.StatusBadRequest, Message: "Close time must be after open time"}
	ErrInvalidInterval = &failure.Failure{Code: http.StatusBadRequest, Message: "Serving interval must be positive"}
	ErrInvalidDuration = &failure.Failure{Code: http.StatusBadRequest, Message: "Dining duration must be positive"}
)

// Generate builds the seatings for one serving window. Seatings start at
// the open time and repeat every interval. When the window divides evenly
// by the interval an extra last-call seating starts exactly at closing,
// so an 8 hour window with 30 minute intervals yields 17 seatings.
func Generate(date, openTime, closeTime time.Time, interval, dining time.Duration, user string) ([]model.TimeSlot, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval // nolint:wrapcheck
	}

	if dining <= 0 {
		return nil, ErrInvalidDuration // nolint:wrapcheck
	}

	if !closeTime.After(openTime) {
		return nil, ErrInvalidWindow // nolint:wrapcheck
	}

	window := closeTime.Sub(openTime)

	count := int(window / interval)
	if window%interval == 0 {
		count++
	}

	now := timezone.Now()

	slots := make([]model.TimeSlot, count)
	for i := range slots {
		slots[i] = model.TimeSlot{
			Date:            date,
			StartTime:       openTime.Add(time.Duration(i) * interval),
			DurationMinutes: int(dining / time.Minute),
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return slots, nil
}
