package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trs/config"
	"trs/infras/otel"
	"trs/internal/domains/calendar/model"
	"trs/internal/domains/calendar/model/dto"
	"trs/internal/domains/calendar/repository"
	"trs/internal/domains/settings"
	"trs/shared"
	"trs/shared/cache"
	"trs/shared/constant"
	"trs/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllOpenDay = "open_day:gets"
)

// ErrAlreadyOpen is returned when a date is opened a second time.
var ErrAlreadyOpen = &failure.Failure{Code: http.StatusConflict, Message: "Date is already open"}

type Calendar interface {
	OpenDays(ctx context.Context, month, year int) (dto.GetOpenDaysResponse, error)
	SetOpenDay(ctx context.Context, req dto.SetOpenDayRequest) (dto.OpenDayResponse, error)
}

type serviceImpl struct {
	repo     repository.Calendar
	settings settings.Provider
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Calendar, settings settings.Provider, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Calendar {
	return &serviceImpl{
		repo:     repo,
		settings: settings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) OpenDays(ctx context.Context, month, year int) (res dto.GetOpenDaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OpenDays")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 {
		return res, failure.InvalidMonthParam // nolint:wrapcheck
	}

	if year < 1 {
		return res, failure.InvalidYearParam // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllOpenDay, strconv.Itoa(month), strconv.Itoa(year))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for open days")

		return res, nil
	}

	models, err := s.repo.GetByMonth(ctx, month, year)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open days")

		return res, fmt.Errorf("failed to get open days: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save open days to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetOpenDay(ctx context.Context, req dto.SetOpenDayRequest) (res dto.OpenDayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetOpenDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := time.Parse(constant.DateFormat, req.Date)
	if err != nil {
		return res, failure.InvalidDateParam // nolint:wrapcheck
	}

	existing, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open day")

		return res, fmt.Errorf("failed to get open day: %w", err)
	}

	if !req.IsOpen {
		return s.closeDay(ctx, date, existing)
	}

	if existing.ID != 0 {
		return res, ErrAlreadyOpen // nolint:wrapcheck
	}

	openTime, closeTime, err := s.resolveServingWindow(ctx, req)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.SystemUser
	}

	day := req.ToModel(date, openTime, closeTime, user)

	day.ID, err = s.repo.Insert(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert open day")

		return res, fmt.Errorf("failed to insert open day: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOpenDay)
	}()

	res.FromModel(day)

	return res, nil
}

// closeDay removes the open-day record. Closing a date that was never
// opened is a no-op so the operation stays idempotent.
func (s *serviceImpl) closeDay(ctx context.Context, date time.Time, existing model.OpenDay) (res dto.OpenDayResponse, err error) {
	if existing.ID == 0 {
		return res, nil
	}

	if err = s.repo.DeleteByDate(ctx, date); err != nil {
		log.Error().Err(err).Msg("failed to delete open day")

		return res, fmt.Errorf("failed to delete open day: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOpenDay)
	}()

	res.FromModel(existing)

	return res, nil
}

func (s *serviceImpl) resolveServingWindow(ctx context.Context, req dto.SetOpenDayRequest) (openTime, closeTime time.Time, err error) {
	current, err := s.settings.Current(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load venue settings")

		return openTime, closeTime, fmt.Errorf("failed to load venue settings: %w", err)
	}

	openTime = current.DefaultOpenTime
	if req.OpenTime != "" {
		openTime, err = time.Parse(constant.ClockFormat, req.OpenTime)
		if err != nil {
			return openTime, closeTime, failure.BadRequestFromString("invalid open time") // nolint:wrapcheck
		}
	}

	closeTime = current.DefaultCloseTime
	if req.CloseTime != "" {
		closeTime, err = time.Parse(constant.ClockFormat, req.CloseTime)
		if err != nil {
			return openTime, closeTime, failure.BadRequestFromString("invalid close time") // nolint:wrapcheck
		}
	}

	if !closeTime.After(openTime) {
		return openTime, closeTime, failure.BadRequestFromString("close time must be after open time") // nolint:wrapcheck
	}

	return openTime, closeTime, nil
}
