package model

import (
	"trs/shared/model"
)

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID    = "id"
	FieldName  = "name"
	FieldSeats = "seats"
)

type Table struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Seats int    `db:"seats"`
	model.Metadata
}
