package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trs/infras/otel"
	"trs/infras/postgres"
	"trs/internal/domains/schedule/model"
	"trs/shared/constant"
	"trs/shared/logger"
)

type Schedule interface {
	GetByDate(ctx context.Context, date time.Time) ([]model.TimeSlot, error)
	GetByID(ctx context.Context, id int64) (model.TimeSlot, error)
	InsertBulk(ctx context.Context, date time.Time, slots []model.TimeSlot) ([]model.TimeSlot, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const selectColumns = `id, slot_date, start_time, duration_minutes, created_at, modified_at, created_by, modified_by`

func (repo *repositoryImpl) GetByDate(ctx context.Context, date time.Time) (slots []model.TimeSlot, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByDate")
	defer scope.End()

	query := `SELECT ` + selectColumns + `
		FROM time_slots
		WHERE slot_date = $1
		ORDER BY start_time`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &slots, query, date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return slots, nil
}

// GetByID returns the zero TimeSlot when no slot has the given id.
func (repo *repositoryImpl) GetByID(ctx context.Context, id int64) (slot model.TimeSlot, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByID")
	defer scope.End()

	query := `SELECT ` + selectColumns + `
		FROM time_slots
		WHERE id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeSlot{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return slot, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return slot, nil
}

// InsertBulk persists the generated slots for a date and returns the
// canonical rows ordered by start time. Slots another writer persisted
// first are kept as-is, so concurrent generation converges on one set.
func (repo *repositoryImpl) InsertBulk(ctx context.Context, date time.Time, slots []model.TimeSlot) (persisted []model.TimeSlot, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InsertBulk")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	insertQuery := `INSERT INTO time_slots (slot_date, start_time, duration_minutes, created_at, modified_at, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slot_date, start_time) DO NOTHING`
	scope.SetAttribute(constant.OtelQueryAttributeKey, insertQuery)

	for _, slot := range slots {
		_, err = tx.ExecContext(ctx, insertQuery,
			slot.Date.Format(constant.DateFormat),
			slot.StartTime.Format(constant.ClockFormat),
			slot.DurationMinutes,
			slot.CreatedAt,
			slot.ModifiedAt,
			slot.CreatedBy,
			slot.ModifiedBy,
		)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return nil, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
		}
	}

	selectQuery := `SELECT ` + selectColumns + `
		FROM time_slots
		WHERE slot_date = $1
		ORDER BY start_time`

	err = tx.SelectContext(ctx, &persisted, selectQuery, date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return persisted, nil
}
