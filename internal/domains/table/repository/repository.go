package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trs/infras/otel"
	"trs/infras/postgres"
	"trs/internal/domains/table/model"
	"trs/shared/constant"
	"trs/shared/logger"
)

type Table interface {
	GetAll(ctx context.Context) ([]model.Table, error)
	GetByID(ctx context.Context, id int64) (model.Table, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) (tables []model.Table, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()

	query := `SELECT id, name, seats, created_at, modified_at, created_by, modified_by
		FROM restaurant_tables
		ORDER BY id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &tables, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return tables, nil
}

// GetByID returns the zero Table when no table has the given id.
func (repo *repositoryImpl) GetByID(ctx context.Context, id int64) (table model.Table, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByID")
	defer scope.End()

	query := `SELECT id, name, seats, created_at, modified_at, created_by, modified_by
		FROM restaurant_tables
		WHERE id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &table, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Table{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return table, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return table, nil
}
