package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"trs/infras/otel/mocks"
	"trs/infras/postgres"
	calendarModel "trs/internal/domains/calendar/model"
	calendarRepo "trs/internal/domains/calendar/repository"
	"trs/internal/domains/reservation/model"
	"trs/internal/domains/reservation/repository"
	scheduleModel "trs/internal/domains/schedule/model"
	scheduleRepo "trs/internal/domains/schedule/repository"
	gModel "trs/shared/model"
)

func startPostgres(t *testing.T) *postgres.Connection {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "trs",
				"POSTGRES_PASSWORD": "trs",
				"POSTGRES_DB":       "trs",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://trs:trs@%s:%s/trs?sslmode=disable", host, port.Port())

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "postgres", "000001_init.up.sql"))
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return &postgres.Connection{Read: db, Write: db}
}

func metadata() gModel.Metadata {
	now := time.Now().UTC()

	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  "system",
		ModifiedBy: "system",
	}
}

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func slotFor(date time.Time, hour, minute int) scheduleModel.TimeSlot {
	return scheduleModel.TimeSlot{
		Date:            date,
		StartTime:       clock(hour, minute),
		DurationMinutes: 120,
		Metadata:        metadata(),
	}
}

func reservationFor(tableID, timeSlotID, openDayID int64) model.TableReservation {
	return model.TableReservation{
		TableID:    tableID,
		TimeSlotID: timeSlotID,
		OpenDayID:  openDayID,
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Metadata:   metadata(),
	}
}

func TestReservationRepository_CreateIfAvailable(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx := context.Background()
	conn := startPostgres(t)

	calendars := calendarRepo.New(conn, mocks.NewOtel())
	schedules := scheduleRepo.New(conn, mocks.NewOtel())
	reservations := repository.New(conn, mocks.NewOtel())

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	openDayID, err := calendars.Insert(ctx, calendarModel.OpenDay{
		Date:      date,
		OpenTime:  clock(16, 0),
		CloseTime: clock(22, 0),
		Metadata:  metadata(),
	})
	require.NoError(t, err)
	require.NotZero(t, openDayID)

	slots, err := schedules.InsertBulk(ctx, date, []scheduleModel.TimeSlot{
		slotFor(date, 18, 0),
		slotFor(date, 18, 30),
		slotFor(date, 20, 30),
	})
	require.NoError(t, err)
	require.Len(t, slots, 3)

	const tableID = int64(1)

	t.Run("concurrent overlapping bookings yield exactly one winner", func(t *testing.T) {
		const attempts = 8

		errs := make(chan error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			// alternate between two seatings whose dining windows overlap
			slot := slots[i%2]

			wg.Add(1)
			go func(slot scheduleModel.TimeSlot) {
				defer wg.Done()

				_, err := reservations.CreateIfAvailable(ctx, reservationFor(tableID, slot.ID, openDayID), slot)
				errs <- err
			}(slot)
		}
		wg.Wait()
		close(errs)

		var won, busy int
		for err := range errs {
			switch {
			case err == nil:
				won++
			case errors.Is(err, repository.ErrTableBusy):
				busy++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, won)
		assert.Equal(t, attempts-1, busy)
	})

	t.Run("booking a non overlapping seating on the same table succeeds", func(t *testing.T) {
		id, err := reservations.CreateIfAvailable(ctx, reservationFor(tableID, slots[2].ID, openDayID), slots[2])

		require.NoError(t, err)
		assert.NotZero(t, id)
	})

	t.Run("booking an occupied seating again is rejected", func(t *testing.T) {
		_, err := reservations.CreateIfAvailable(ctx, reservationFor(tableID, slots[2].ID, openDayID), slots[2])

		require.ErrorIs(t, err, repository.ErrTableBusy)
	})

	t.Run("booking a missing table reports it gone", func(t *testing.T) {
		_, err := reservations.CreateIfAvailable(ctx, reservationFor(9999, slots[2].ID, openDayID), slots[2])

		require.ErrorIs(t, err, repository.ErrTableGone)
	})

	t.Run("reservations for the date read back with their seating times", func(t *testing.T) {
		all, err := reservations.GetByDate(ctx, date)

		require.NoError(t, err)
		require.Len(t, all, 2)

		for _, r := range all {
			assert.Equal(t, tableID, r.TableID)
			assert.Equal(t, 120, r.DurationMinutes)
		}
	})
}
