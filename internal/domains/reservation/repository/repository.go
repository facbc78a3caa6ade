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
	"trs/internal/domains/reservation/model"
	scheduleModel "trs/internal/domains/schedule/model"
	"trs/shared/constant"
	"trs/shared/logger"
)

// ErrTableBusy signals that the table is occupied during the requested
// seating. The service maps it to a client-facing conflict.
var ErrTableBusy = errors.New("table busy")

// ErrTableGone signals that the table row vanished between validation and
// the locked write.
var ErrTableGone = errors.New("table gone")

type Reservation interface {
	GetByDate(ctx context.Context, date time.Time) ([]model.ReservationWithSlot, error)
	GetPaginated(ctx context.Context, date time.Time, page, limit int) ([]model.ReservationWithSlot, error)
	Count(ctx context.Context, date time.Time) (int, error)
	CreateIfAvailable(ctx context.Context, reservation model.TableReservation, slot scheduleModel.TimeSlot) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const selectJoined = `r.id, r.table_id, r.time_slot_id, r.open_day_id, r.full_name, r.email, r.phone_number,
		r.send_reminders, r.comment, r.created_at, r.modified_at, r.created_by, r.modified_by,
		ts.slot_date, ts.start_time, ts.duration_minutes`

func (repo *repositoryImpl) GetByDate(ctx context.Context, date time.Time) (reservations []model.ReservationWithSlot, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByDate")
	defer scope.End()

	query := `SELECT ` + selectJoined + `
		FROM table_reservations r
		JOIN time_slots ts ON ts.id = r.time_slot_id
		WHERE ts.slot_date = $1
		ORDER BY ts.start_time, r.table_id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &reservations, query, date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return reservations, nil
}

func (repo *repositoryImpl) GetPaginated(ctx context.Context, date time.Time, page, limit int) (reservations []model.ReservationWithSlot, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetPaginated")
	defer scope.End()

	query := `SELECT ` + selectJoined + `
		FROM table_reservations r
		JOIN time_slots ts ON ts.id = r.time_slot_id
		WHERE ts.slot_date = $1
		ORDER BY ts.start_time, r.table_id
		LIMIT $2 OFFSET $3`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	offset := (page - 1) * limit

	err = repo.db.Read.SelectContext(ctx, &reservations, query, date.Format(constant.DateFormat), limit, offset)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return reservations, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, date time.Time) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Count")
	defer scope.End()

	query := `SELECT COUNT(r.id)
		FROM table_reservations r
		JOIN time_slots ts ON ts.id = r.time_slot_id
		WHERE ts.slot_date = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &count, query, date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

// CreateIfAvailable books the table for the seating, or returns
// ErrTableBusy when an existing reservation occupies the table during it.
// The table row is locked for the duration of the transaction so two
// concurrent bookings for the same table serialize, and the occupation
// check runs against committed rows only. Exactly one of two racing
// requests for an overlapping seating wins.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, reservation model.TableReservation, slot scheduleModel.TimeSlot) (id int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".CreateIfAvailable")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery := `SELECT id FROM restaurant_tables WHERE id = $1 FOR UPDATE`
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	var lockedID int64
	err = tx.GetContext(ctx, &lockedID, lockQuery, reservation.TableID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrTableGone

		return 0, err
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to lock table row (%s): %w", model.EntityName, err)
	}

	existingQuery := `SELECT ` + selectJoined + `
		FROM table_reservations r
		JOIN time_slots ts ON ts.id = r.time_slot_id
		WHERE r.table_id = $1 AND ts.slot_date = $2`

	var existing []model.ReservationWithSlot
	err = tx.SelectContext(ctx, &existing, existingQuery, reservation.TableID, slot.Date.Format(constant.DateFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	for _, occupied := range existing {
		if slot.StartMinutes() < occupied.EndMinutes() && occupied.StartMinutes() < slot.EndMinutes() {
			err = ErrTableBusy

			return 0, err
		}
	}

	insertQuery := `INSERT INTO table_reservations (table_id, time_slot_id, open_day_id, full_name, email, phone_number,
			send_reminders, comment, created_at, modified_at, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err = tx.QueryRowxContext(ctx, insertQuery,
		reservation.TableID,
		reservation.TimeSlotID,
		reservation.OpenDayID,
		reservation.FullName,
		reservation.Email,
		reservation.PhoneNumber,
		reservation.SendReminders,
		reservation.Comment,
		reservation.CreatedAt,
		reservation.ModifiedAt,
		reservation.CreatedBy,
		reservation.ModifiedBy,
	).Scan(&id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return id, nil
}
