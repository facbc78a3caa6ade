package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trs/config"
	kafkaMocks "trs/infras/kafka/mocks"
	"trs/infras/otel/mocks"
	calendarMocks "trs/internal/domains/calendar/mocks"
	calendarModel "trs/internal/domains/calendar/model"
	reservationMocks "trs/internal/domains/reservation/mocks"
	"trs/internal/domains/reservation/model"
	"trs/internal/domains/reservation/model/dto"
	"trs/internal/domains/reservation/repository"
	"trs/internal/domains/reservation/service"
	scheduleMocks "trs/internal/domains/schedule/mocks"
	scheduleModel "trs/internal/domains/schedule/model"
	tableMocks "trs/internal/domains/table/mocks"
	tableModel "trs/internal/domains/table/model"
	cacheMocks "trs/shared/cache/mocks"
	"trs/shared/failure"
)

type reservationFixture struct {
	svc      service.Reservation
	repo     *reservationMocks.MockReservation
	schedule *scheduleMocks.MockSchedule
	calendar *calendarMocks.MockCalendar
	tables   *tableMocks.MockTable
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
}

func newReservationFixture(t *testing.T) reservationFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := reservationFixture{
		repo:     reservationMocks.NewMockReservation(ctrl),
		schedule: scheduleMocks.NewMockSchedule(ctrl),
		calendar: calendarMocks.NewMockCalendar(ctrl),
		tables:   tableMocks.NewMockTable(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.schedule, f.calendar, f.tables, &config.Config{}, f.cache, f.kafka, mocks.NewOtel())

	return f
}

func clock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("15:04", value)
	require.NoError(t, err)

	return parsed
}

var testDate = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

func slotAt(t *testing.T, id int64, start string) scheduleModel.TimeSlot {
	t.Helper()

	return scheduleModel.TimeSlot{
		ID:              id,
		Date:            testDate,
		StartTime:       clock(t, start),
		DurationMinutes: 120,
	}
}

func reservedAt(t *testing.T, tableID int64, start string) model.ReservationWithSlot {
	t.Helper()

	return model.ReservationWithSlot{
		TableReservation: model.TableReservation{TableID: tableID},
		SlotDate:         testDate,
		StartTime:        clock(t, start),
		DurationMinutes:  120,
	}
}

func TestReservationService_AvailableTables(t *testing.T) {
	allTables := []tableModel.Table{
		{ID: 1, Name: "Window", Seats: 2},
		{ID: 2, Name: "Corner", Seats: 4},
		{ID: 3, Name: "Patio", Seats: 6},
	}

	t.Run("excludes tables whose dining window overlaps the seating", func(t *testing.T) {
		f := newReservationFixture(t)

		// seating 18:00-20:00; table 1 occupied 17:00-19:00 overlaps,
		// table 2 occupied 16:00-18:00 frees the table exactly at start
		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.repo.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return([]model.ReservationWithSlot{
				reservedAt(t, 1, "17:00"),
				reservedAt(t, 2, "16:00"),
			}, nil)

		f.tables.EXPECT().
			GetAll(gomock.Any()).
			Return(allTables, nil)

		res, err := f.svc.AvailableTables(context.Background(), 10)

		require.NoError(t, err)
		require.Len(t, res.Tables, 2)
		assert.Equal(t, int64(2), res.Tables[0].ID)
		assert.Equal(t, int64(3), res.Tables[1].ID)
	})

	t.Run("a table reserved for a different but overlapping seating is excluded", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(11)).
			Return(slotAt(t, 11, "18:30"), nil)

		f.repo.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return([]model.ReservationWithSlot{reservedAt(t, 3, "17:30")}, nil)

		f.tables.EXPECT().
			GetAll(gomock.Any()).
			Return(allTables, nil)

		res, err := f.svc.AvailableTables(context.Background(), 11)

		require.NoError(t, err)
		require.Len(t, res.Tables, 2)
		for _, table := range res.Tables {
			assert.NotEqual(t, int64(3), table.ID)
		}
	})

	t.Run("all tables are free when the date has no reservations", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(12)).
			Return(slotAt(t, 12, "16:00"), nil)

		f.repo.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(nil, nil)

		f.tables.EXPECT().
			GetAll(gomock.Any()).
			Return(allTables, nil)

		res, err := f.svc.AvailableTables(context.Background(), 12)

		require.NoError(t, err)
		assert.Len(t, res.Tables, 3)
	})

	t.Run("rejects a non positive slot reference", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.svc.AvailableTables(context.Background(), -1)

		assert.ErrorIs(t, err, service.ErrInvalidReference)
	})

	t.Run("rejects an unknown slot", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(99)).
			Return(scheduleModel.TimeSlot{}, nil)

		_, err := f.svc.AvailableTables(context.Background(), 99)

		assert.ErrorIs(t, err, service.ErrTimeSlotNotFound)
	})
}

func TestReservationService_Reserve(t *testing.T) {
	validReq := func() dto.ReserveRequest {
		return dto.ReserveRequest{
			TableID:     1,
			TimeSlotID:  10,
			FullName:    "John Doe",
			Email:       "john@example.com",
			PhoneNumber: "123456789",
		}
	}

	openDay := calendarModel.OpenDay{ID: 5, Date: testDate}
	table := tableModel.Table{ID: 1, Name: "Window", Seats: 2}

	t.Run("books a free table and publishes the created event", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(openDay, nil)

		f.tables.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(table, nil)

		f.repo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(42), nil)

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.kafka.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.Reserve(context.Background(), validReq())

		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, "2026-09-12", res.Date)
		assert.Equal(t, "18:00", res.StartTime)

		// let the async event publish land before the controller finishes
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("reports the occupied table as already reserved", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(openDay, nil)

		f.tables.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(table, nil)

		f.repo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), repository.ErrTableBusy)

		_, err := f.svc.Reserve(context.Background(), validReq())

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrTableUnavailable)
		assert.Equal(t, "Table is already reserved", err.Error())
	})

	t.Run("rejects a negative table reference before any other check", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validReq()
		req.TableID = -1
		req.FullName = "John Doe123"

		_, err := f.svc.Reserve(context.Background(), req)

		assert.ErrorIs(t, err, service.ErrInvalidReference)
	})

	t.Run("rejects a name with characters other than letters and spaces", func(t *testing.T) {
		f := newReservationFixture(t)

		for _, name := range []string{"John Doe123", "John_Doe", "", "J@ne"} {
			req := validReq()
			req.FullName = name

			_, err := f.svc.Reserve(context.Background(), req)

			assert.ErrorIs(t, err, service.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validReq()
		req.Email = "johnexample.com"

		_, err := f.svc.Reserve(context.Background(), req)

		assert.ErrorIs(t, err, service.ErrInvalidEmail)
	})

	t.Run("accepts an empty email", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(openDay, nil)

		f.tables.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(table, nil)

		f.repo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(43), nil)

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.kafka.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		req := validReq()
		req.Email = ""

		_, err := f.svc.Reserve(context.Background(), req)

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("accepts an empty phone number", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(openDay, nil)

		f.tables.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(table, nil)

		f.repo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(44), nil)

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.kafka.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		req := validReq()
		req.PhoneNumber = ""

		_, err := f.svc.Reserve(context.Background(), req)

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("rejects a phone number with non digits", func(t *testing.T) {
		f := newReservationFixture(t)

		req := validReq()
		req.PhoneNumber = "12345a789"

		_, err := f.svc.Reserve(context.Background(), req)

		assert.ErrorIs(t, err, service.ErrInvalidPhone)
	})

	t.Run("rejects an unknown time slot", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(scheduleModel.TimeSlot{}, nil)

		_, err := f.svc.Reserve(context.Background(), validReq())

		assert.ErrorIs(t, err, service.ErrTimeSlotNotFound)
	})

	t.Run("rejects a booking on a closed date", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(calendarModel.OpenDay{}, nil)

		_, err := f.svc.Reserve(context.Background(), validReq())

		assert.ErrorIs(t, err, service.ErrVenueClosed)
	})

	t.Run("rejects an unknown table", func(t *testing.T) {
		f := newReservationFixture(t)

		f.schedule.EXPECT().
			GetByID(gomock.Any(), int64(10)).
			Return(slotAt(t, 10, "18:00"), nil)

		f.calendar.EXPECT().
			GetByDate(gomock.Any(), testDate).
			Return(openDay, nil)

		f.tables.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(tableModel.Table{}, nil)

		_, err := f.svc.Reserve(context.Background(), validReq())

		assert.ErrorIs(t, err, service.ErrTableNotFound)
	})
}

func TestReservationService_Reservations(t *testing.T) {
	t.Run("rejects a malformed date", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.svc.Reservations(context.Background(), "not-a-date", 1, 20)

		assert.ErrorIs(t, err, failure.InvalidDateParam)
	})

	t.Run("pages through reservations for a date", func(t *testing.T) {
		f := newReservationFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		f.repo.EXPECT().
			Count(gomock.Any(), testDate).
			Return(3, nil)

		f.repo.EXPECT().
			GetPaginated(gomock.Any(), testDate, 1, 2).
			Return([]model.ReservationWithSlot{
				reservedAt(t, 1, "18:00"),
				reservedAt(t, 2, "18:30"),
			}, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.Reservations(context.Background(), "2026-09-12", 1, 2)

		require.NoError(t, err)
		assert.Len(t, res.Reservations, 2)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)

		time.Sleep(10 * time.Millisecond)
	})
}
