package model

import (
	"time"
	"trs/shared/model"
)

const (
	TableName  = "open_days"
	EntityName = "open day"

	FieldID        = "id"
	FieldOpenDate  = "open_date"
	FieldOpenTime  = "open_time"
	FieldCloseTime = "close_time"
)

// OpenDay marks a calendar date the venue accepts reservations on,
// together with the serving window for that date.
type OpenDay struct {
	ID        int64     `db:"id"`
	Date      time.Time `db:"open_date"`
	OpenTime  time.Time `db:"open_time"`
	CloseTime time.Time `db:"close_time"`
	model.Metadata
}
