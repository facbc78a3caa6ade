package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trs/config"
	"trs/infras/otel/mocks"
	calendarMocks "trs/internal/domains/calendar/mocks"
	calendarModel "trs/internal/domains/calendar/model"
	scheduleMocks "trs/internal/domains/schedule/mocks"
	"trs/internal/domains/schedule/model"
	"trs/internal/domains/schedule/service"
	"trs/internal/domains/settings"
	settingsMocks "trs/internal/domains/settings/mocks"
	cacheMocks "trs/shared/cache/mocks"
	"trs/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func defaultSettings(t *testing.T) settings.Settings {
	t.Helper()

	return settings.Settings{
		DefaultOpenTime:     clock(t, "16:00"),
		DefaultCloseTime:    clock(t, "22:00"),
		ServingInterval:     30 * time.Minute,
		DiningDuration:      2 * time.Hour,
		ReservationsPerSlot: 2,
	}
}

func TestScheduleService_SlotsForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockCalendar := calendarMocks.NewMockCalendar(ctrl)
	mockSettings := settingsMocks.NewMockProvider(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockCalendar, mockSettings, cfg, mockCache, mockOtel)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	persisted := []model.TimeSlot{
		{ID: 1, Date: date, StartTime: clock(t, "16:00"), DurationMinutes: 120},
		{ID: 2, Date: date, StartTime: clock(t, "16:30"), DurationMinutes: 120},
	}

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		date      string
		setupMock func()
		wantErr   error
		wantCount int
	}{
		{
			name: "returns previously persisted seatings",
			date: "2026-09-12",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errCacheMiss)

				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(persisted, nil)
			},
			wantCount: 2,
		},
		{
			name: "generates seatings with the open day serving window",
			date: "2026-09-12",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errCacheMiss)

				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(nil, nil)

				mockSettings.EXPECT().
					Current(gomock.Any()).
					Return(defaultSettings(t), nil)

				mockCalendar.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(calendarModel.OpenDay{
						ID:        3,
						Date:      date,
						OpenTime:  clock(t, "14:00"),
						CloseTime: clock(t, "22:00"),
					}, nil)

				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), date, gomock.Len(17)).
					DoAndReturn(func(_ context.Context, _ time.Time, slots []model.TimeSlot) ([]model.TimeSlot, error) {
						return slots, nil
					})
			},
			wantCount: 17,
		},
		{
			name: "generates seatings with the default serving window when the date is not open",
			date: "2026-09-12",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errCacheMiss)

				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(nil, nil)

				mockSettings.EXPECT().
					Current(gomock.Any()).
					Return(defaultSettings(t), nil)

				mockCalendar.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(calendarModel.OpenDay{}, nil)

				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), date, gomock.Len(13)).
					DoAndReturn(func(_ context.Context, _ time.Time, slots []model.TimeSlot) ([]model.TimeSlot, error) {
						return slots, nil
					})
			},
			wantCount: 13,
		},
		{
			name:      "rejects malformed date",
			date:      "12/09/2026",
			setupMock: func() {},
			wantErr:   failure.InvalidDateParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.SlotsForDate(context.Background(), tt.date)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.TimeSlots, tt.wantCount)

			// let the async cache write land before the controller finishes
			time.Sleep(10 * time.Millisecond)
		})
	}
}
