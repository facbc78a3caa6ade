package reservation

import (
	"net/http"
	"strconv"

	"trs/infras/otel"
	"trs/internal/domains/reservation/model/dto"
	"trs/internal/domains/reservation/service"
	"trs/shared/constant"
	gDto "trs/shared/dto"
	"trs/shared/validator"
	"trs/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Reserve)
		routerGroup.Get("/availability", handler.GetAvailableTables)
	})
}

// ProtectedRouter mounts the endpoints that require an authenticated admin.
func (handler *Handler) ProtectedRouter(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReservations)
	})
}

// Reserve books a table for a seating.
// @Summary Reserve a table
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.ReserveRequest true "Reserve Request"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) Reserve(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reserve")
	defer scope.End()

	req := dto.ReserveRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reserve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reserve table")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created for table " + strconv.FormatInt(res.TableID, 10))

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAvailableTables lists the tables free for a seating.
// @Summary Get available tables for a time slot
// @Tags Reservation
// @Produce json
// @Param time_slot_id query int true "Time slot id"
// @Success 200 {object} response.Data[dto.GetAvailableTablesResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/availability [get]
func (handler *Handler) GetAvailableTables(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableTables")
	defer scope.End()

	timeSlotID, err := strconv.ParseInt(request.URL.Query().Get(constant.RequestParamTimeSlotID), 10, 64)
	if err != nil {
		timeSlotID = -1
	}

	res, err := handler.service.AvailableTables(ctx, timeSlotID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	date := request.URL.Query().Get(constant.RequestParamDate)

	res, err := handler.service.Reservations(ctx, date, queryParams.Page, queryParams.Limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
