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
	"trs/internal/domains/user/model"
	"trs/shared/constant"
	"trs/shared/logger"
	"trs/shared/timezone"
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string, lastLogin time.Time) error
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, user model.User) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()

	query := `INSERT INTO users (id, email, password, level, full_name, active, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :email, :password, :level, :full_name, :active, :created_at, :modified_at, :created_by, :modified_by)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.NamedExecContext(ctx, query, user)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

// GetByEmail returns the zero User when no account has the given email.
func (repo *repositoryImpl) GetByEmail(ctx context.Context, email string) (user model.User, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByEmail")
	defer scope.End()

	query := `SELECT id, email, password, level, full_name, last_login, active, created_at, modified_at, created_by, modified_by
		FROM users
		WHERE email = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return user, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return user, nil
}

func (repo *repositoryImpl) ExistsByEmail(ctx context.Context, email string) (exists bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ExistsByEmail")
	defer scope.End()

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &exists, query, email)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check data (%s): %w", model.EntityName, err)
	}

	return exists, nil
}

func (repo *repositoryImpl) UpdateLastLogin(ctx context.Context, id string, lastLogin time.Time) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdateLastLogin")
	defer scope.End()

	query := `UPDATE users SET last_login = $1, modified_at = $2 WHERE id = $3`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.ExecContext(ctx, query, lastLogin, lastLogin, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) UpdatePassword(ctx context.Context, id, hashedPassword string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdatePassword")
	defer scope.End()

	query := `UPDATE users SET password = $1, modified_at = $2, modified_by = $3 WHERE id = $4`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.ExecContext(ctx, query, hashedPassword, timezone.Now(), id, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}
