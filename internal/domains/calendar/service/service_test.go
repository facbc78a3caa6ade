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
	"trs/internal/domains/calendar/model"
	"trs/internal/domains/calendar/model/dto"
	"trs/internal/domains/calendar/service"
	"trs/internal/domains/settings"
	settingsMocks "trs/internal/domains/settings/mocks"
	cacheMocks "trs/shared/cache/mocks"
	"trs/shared/constant"
	"trs/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func defaultSettings() settings.Settings {
	open, _ := time.Parse("15:04", "16:00")
	clos, _ := time.Parse("15:04", "22:00")

	return settings.Settings{
		DefaultOpenTime:     open,
		DefaultCloseTime:    clos,
		ServingInterval:     30 * time.Minute,
		DiningDuration:      2 * time.Hour,
		ReservationsPerSlot: 2,
	}
}

func TestCalendarService_OpenDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockSettings := settingsMocks.NewMockProvider(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSettings, cfg, mockCache, mockOtel)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	days := []model.OpenDay{{ID: 1, Date: date}}

	tests := []struct {
		name      string
		month     int
		year      int
		setupMock func()
		wantErr   error
		wantCount int
	}{
		{
			name:  "returns open days for the month",
			month: 9,
			year:  2026,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errCacheMiss)

				mockRepo.EXPECT().
					GetByMonth(gomock.Any(), 9, 2026).
					Return(days, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantCount: 1,
		},
		{
			name:      "rejects month below range",
			month:     0,
			year:      2026,
			setupMock: func() {},
			wantErr:   failure.InvalidMonthParam,
		},
		{
			name:      "rejects month above range",
			month:     13,
			year:      2026,
			setupMock: func() {},
			wantErr:   failure.InvalidMonthParam,
		},
		{
			name:      "rejects non positive year",
			month:     9,
			year:      0,
			setupMock: func() {},
			wantErr:   failure.InvalidYearParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.OpenDays(context.Background(), tt.month, tt.year)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.OpenDays, tt.wantCount)

			// let the async cache write land before the controller finishes
			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestCalendarService_SetOpenDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockSettings := settingsMocks.NewMockProvider(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSettings, cfg, mockCache, mockOtel)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	openDay := model.OpenDay{ID: 7, Date: date}

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		req       dto.SetOpenDayRequest
		setupMock func()
		wantErr   error
		wantOpen  string
	}{
		{
			name: "opens a date with default serving window",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: true},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(model.OpenDay{}, nil)

				mockSettings.EXPECT().
					Current(gomock.Any()).
					Return(defaultSettings(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)
			},
			wantOpen: "16:00",
		},
		{
			name: "opens a date with explicit serving window",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: true, OpenTime: "17:30", CloseTime: "23:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(model.OpenDay{}, nil)

				mockSettings.EXPECT().
					Current(gomock.Any()).
					Return(defaultSettings(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(8), nil)
			},
			wantOpen: "17:30",
		},
		{
			name: "rejects opening a date twice",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: true},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(openDay, nil)
			},
			wantErr: service.ErrAlreadyOpen,
		},
		{
			name:      "rejects malformed date",
			req:       dto.SetOpenDayRequest{Date: "12-09-2026", IsOpen: true},
			setupMock: func() {},
			wantErr:   failure.InvalidDateParam,
		},
		{
			name: "rejects close time before open time",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: true, OpenTime: "22:00", CloseTime: "16:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(model.OpenDay{}, nil)

				mockSettings.EXPECT().
					Current(gomock.Any()).
					Return(defaultSettings(), nil)
			},
			wantErr: failure.BadRequestFromString("close time must be after open time"),
		},
		{
			name: "closes an open date",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: false},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(openDay, nil)

				mockRepo.EXPECT().
					DeleteByDate(gomock.Any(), date).
					Return(nil)
			},
		},
		{
			name: "closing a date that was never opened is a no-op",
			req:  dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: false},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByDate(gomock.Any(), date).
					Return(model.OpenDay{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.SetOpenDay(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())

				return
			}

			require.NoError(t, err)
			if tt.wantOpen != "" {
				assert.Equal(t, tt.wantOpen, res.OpenTime)
			}

			// let the async cache invalidation land before the controller finishes
			time.Sleep(10 * time.Millisecond)
		})
	}

	t.Run("records the system user when the context carries none", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByDate(gomock.Any(), date).
			Return(model.OpenDay{}, nil)

		mockSettings.EXPECT().
			Current(gomock.Any()).
			Return(defaultSettings(), nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, day model.OpenDay) (int64, error) {
				assert.Equal(t, constant.SystemUser, day.CreatedBy)
				assert.Equal(t, constant.SystemUser, day.ModifiedBy)

				return int64(9), nil
			})

		_, err := svc.SetOpenDay(context.Background(), dto.SetOpenDayRequest{Date: "2026-09-12", IsOpen: true})

		require.NoError(t, err)

		// let the async cache invalidation land before the controller finishes
		time.Sleep(10 * time.Millisecond)
	})
}
