package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trs/config"
	"trs/infras/kafka"
	"trs/infras/otel"
	calendarRepo "trs/internal/domains/calendar/repository"
	"trs/internal/domains/reservation/model"
	"trs/internal/domains/reservation/model/dto"
	"trs/internal/domains/reservation/repository"
	scheduleModel "trs/internal/domains/schedule/model"
	scheduleRepo "trs/internal/domains/schedule/repository"
	tableDto "trs/internal/domains/table/model/dto"
	tableRepo "trs/internal/domains/table/repository"
	"trs/shared"
	"trs/shared/cache"
	"trs/shared/constant"
	"trs/shared/failure"
	"trs/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

var (
	ErrInvalidReference = &failure.Failure{Code: http.StatusBadRequest, Message: "Invalid table or time slot reference"}
	ErrInvalidName      = &failure.Failure{Code: http.StatusBadRequest, Message: "Name can only contain letters and spaces"}
	ErrInvalidEmail     = &failure.Failure{Code: http.StatusBadRequest, Message: "Invalid email address"}
	ErrInvalidPhone     = &failure.Failure{Code: http.StatusBadRequest, Message: "Phone number can only contain digits"}
	ErrTimeSlotNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "Time slot not found"}
	ErrTableNotFound    = &failure.Failure{Code: http.StatusNotFound, Message: "Table not found"}
	ErrVenueClosed      = &failure.Failure{Code: http.StatusConflict, Message: "Venue is closed on the selected date"}
	ErrTableUnavailable = &failure.Failure{Code: http.StatusConflict, Message: "Table is already reserved"}
)

type Reservation interface {
	AvailableTables(ctx context.Context, timeSlotID int64) (dto.GetAvailableTablesResponse, error)
	Reserve(ctx context.Context, req dto.ReserveRequest) (dto.ReservationResponse, error)
	Reservations(ctx context.Context, date string, page, limit int) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo     repository.Reservation
	schedule scheduleRepo.Schedule
	calendar calendarRepo.Calendar
	tables   tableRepo.Table
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(
	repo repository.Reservation,
	schedule scheduleRepo.Schedule,
	calendar calendarRepo.Calendar,
	tables tableRepo.Table,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		schedule: schedule,
		calendar: calendar,
		tables:   tables,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

// AvailableTables returns the tables free for the whole dining duration of
// the given seating. A table already reserved for any seating whose dining
// window overlaps this one is excluded, not just exact slot matches.
func (s *serviceImpl) AvailableTables(ctx context.Context, timeSlotID int64) (res dto.GetAvailableTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	if timeSlotID <= 0 {
		return res, ErrInvalidReference // nolint:wrapcheck
	}

	slot, err := s.schedule.GetByID(ctx, timeSlotID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == 0 {
		return res, ErrTimeSlotNotFound // nolint:wrapcheck
	}

	reservations, err := s.repo.GetByDate(ctx, slot.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	occupied := map[int64]bool{}
	for _, reservation := range reservations {
		if slot.StartMinutes() < reservation.EndMinutes() && reservation.StartMinutes() < slot.EndMinutes() {
			occupied[reservation.TableID] = true
		}
	}

	all, err := s.tables.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.TimeSlotID = timeSlotID
	res.Tables = make([]tableDto.TableResponse, 0, len(all))
	for _, table := range all {
		if occupied[table.ID] {
			continue
		}

		var tr tableDto.TableResponse
		tr.FromModel(table)
		res.Tables = append(res.Tables, tr)
	}

	return res, nil
}

// Reserve books a table for a seating. Validation failures are reported
// one at a time in a fixed order so the caller always sees the first
// problem with the request.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateGuestDetails(req); err != nil {
		return res, err
	}

	slot, err := s.schedule.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == 0 {
		return res, ErrTimeSlotNotFound // nolint:wrapcheck
	}

	openDay, err := s.calendar.GetByDate(ctx, slot.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get open day")

		return res, fmt.Errorf("failed to get open day: %w", err)
	}

	if openDay.ID == 0 {
		return res, ErrVenueClosed // nolint:wrapcheck
	}

	table, err := s.tables.GetByID(ctx, req.TableID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == 0 {
		return res, ErrTableNotFound // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.SystemUser
	}

	reservation := req.ToModel(openDay.ID, user)

	reservation.ID, err = s.repo.CreateIfAvailable(ctx, reservation, slot)
	if errors.Is(err, repository.ErrTableBusy) {
		return res, ErrTableUnavailable // nolint:wrapcheck
	}

	if errors.Is(err, repository.ErrTableGone) {
		return res, ErrTableNotFound // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.FromModel(model.ReservationWithSlot{
		TableReservation: reservation,
		SlotDate:         slot.Date,
		StartTime:        slot.StartTime,
		DurationMinutes:  slot.DurationMinutes,
	})

	go s.afterReserve(ctx, reservation, slot)

	return res, nil
}

func (s *serviceImpl) Reservations(ctx context.Context, date string, page, limit int) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.DateFormat, date)
	if err != nil {
		return res, failure.InvalidDateParam // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllReservation, date, strconv.Itoa(page), strconv.Itoa(limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetPaginated(ctx, day, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// afterReserve runs the off-path work of a successful booking: cache
// invalidation and the event the notifier consumes.
func (s *serviceImpl) afterReserve(ctx context.Context, reservation model.TableReservation, slot scheduleModel.TimeSlot) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(c, s.cache, cacheCountReservation)

	event := dto.ReservationCreatedEvent{
		ReservationID: reservation.ID,
		TableID:       reservation.TableID,
		TimeSlotID:    reservation.TimeSlotID,
		Date:          slot.Date.Format(constant.DateFormat),
		StartTime:     slot.StartTime.Format(constant.ClockFormat),
		FullName:      reservation.FullName,
		Email:         reservation.Email,
		PhoneNumber:   reservation.PhoneNumber,
		SendReminders: reservation.SendReminders,
	}

	err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.ReservationCreated, kafka.Message{
		Key:   strconv.FormatInt(reservation.ID, 10),
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Int64("reservationID", reservation.ID).Msg("failed to publish reservation created event")
	}
}

func validateGuestDetails(req dto.ReserveRequest) error {
	if req.TableID <= 0 || req.TimeSlotID <= 0 {
		return ErrInvalidReference // nolint:wrapcheck
	}

	if req.FullName == constant.Empty || validator.ValidateVar(req.FullName, "personname") != nil {
		return ErrInvalidName // nolint:wrapcheck
	}

	if req.Email != constant.Empty && validator.ValidateVar(req.Email, "email") != nil {
		return ErrInvalidEmail // nolint:wrapcheck
	}

	if req.PhoneNumber != constant.Empty && validator.ValidateVar(req.PhoneNumber, "digitsonly") != nil {
		return ErrInvalidPhone // nolint:wrapcheck
	}

	return nil
}
