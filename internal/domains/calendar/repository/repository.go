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
	"trs/internal/domains/calendar/model"
	"trs/shared/constant"
	"trs/shared/logger"
)

type Calendar interface {
	GetByDate(ctx context.Context, date time.Time) (model.OpenDay, error)
	GetByMonth(ctx context.Context, month, year int) ([]model.OpenDay, error)
	Insert(ctx context.Context, day model.OpenDay) (int64, error)
	DeleteByDate(ctx context.Context, date time.Time) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Calendar {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// GetByDate returns the zero OpenDay when the date is not open.
func (repo *repositoryImpl) GetByDate(ctx context.Context, date time.Time) (day model.OpenDay, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByDate")
	defer scope.End()

	query := `SELECT id, open_date, open_time, close_time, created_at, modified_at, created_by, modified_by
		FROM open_days
		WHERE open_date = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &day, query, date.Format(constant.DateFormat))
	if errors.Is(err, sql.ErrNoRows) {
		return model.OpenDay{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return day, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return day, nil
}

func (repo *repositoryImpl) GetByMonth(ctx context.Context, month, year int) (days []model.OpenDay, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByMonth")
	defer scope.End()

	query := `SELECT id, open_date, open_time, close_time, created_at, modified_at, created_by, modified_by
		FROM open_days
		WHERE date_part('month', open_date) = $1 AND date_part('year', open_date) = $2
		ORDER BY open_date`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &days, query, month, year)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return days, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, day model.OpenDay) (id int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()

	query := `INSERT INTO open_days (open_date, open_time, close_time, created_at, modified_at, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Write.QueryRowxContext(ctx, query,
		day.Date.Format(constant.DateFormat),
		day.OpenTime.Format(constant.ClockFormat),
		day.CloseTime.Format(constant.ClockFormat),
		day.CreatedAt,
		day.ModifiedAt,
		day.CreatedBy,
		day.ModifiedBy,
	).Scan(&id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}

func (repo *repositoryImpl) DeleteByDate(ctx context.Context, date time.Time) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".DeleteByDate")
	defer scope.End()

	query := `DELETE FROM open_days WHERE open_date = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.ExecContext(ctx, query, date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}
