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
	tableMocks "trs/internal/domains/table/mocks"
	"trs/internal/domains/table/model"
	"trs/internal/domains/table/model/dto"
	"trs/internal/domains/table/service"
	cacheMocks "trs/shared/cache/mocks"
)

var errCacheMiss = errors.New("cache miss")

func TestTableService_Tables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tableMocks.NewMockTable(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	cfg := &config.Config{}
	svc := service.New(repo, cfg, cache, mocks.NewOtel())

	tables := []model.Table{
		{ID: 1, Name: "Window 1", Seats: 2},
		{ID: 2, Name: "Main 1", Seats: 4},
	}

	t.Run("returns tables from repository on cache miss", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "table:gets:all", gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().GetAll(gomock.Any()).Return(tables, nil)
		cache.EXPECT().Save(gomock.Any(), "table:gets:all", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Tables(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Tables, 2)
		assert.Equal(t, int64(1), res.Tables[0].ID)
		assert.Equal(t, "Window 1", res.Tables[0].Name)
		assert.Equal(t, 4, res.Tables[1].Seats)

		// let the async cache write land before the controller finishes
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("returns cached tables without hitting repository", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "table:gets:all", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, out any) error {
				res := out.(*dto.GetTablesResponse)
				res.FromModels(tables)

				return nil
			})

		res, err := svc.Tables(context.Background())

		require.NoError(t, err)
		assert.Len(t, res.Tables, 2)
	})

	t.Run("returns error when repository fails", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "table:gets:all", gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := svc.Tables(context.Background())

		require.Error(t, err)
	})
}
