package calendar

import (
	"net/http"
	"strconv"

	"trs/infras/otel"
	"trs/internal/domains/calendar/model/dto"
	"trs/internal/domains/calendar/service"
	"trs/shared/constant"
	"trs/shared/failure"
	"trs/shared/validator"
	"trs/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/open-days", handler.GetOpenDays)
	})
}

// ProtectedRouter mounts the endpoints that require an authenticated admin.
func (handler *Handler) ProtectedRouter(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Post("/open-days", handler.SetOpenDay)
	})
}

// GetOpenDays lists the dates open for reservations in a month.
// @Summary Get open days
// @Tags Calendar
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Data[dto.GetOpenDaysResponse]
// @Failure 400 {object} response.Error
// @Router /v1/calendar/open-days [get]
func (handler *Handler) GetOpenDays(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOpenDays")
	defer scope.End()

	month, err := strconv.Atoi(request.URL.Query().Get(constant.RequestParamMonth))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.InvalidMonthParam)

		return
	}

	year, err := strconv.Atoi(request.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.InvalidYearParam)

		return
	}

	res, err := handler.service.OpenDays(ctx, month, year)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get open days")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SetOpenDay opens or closes a date for reservations.
// @Summary Open or close a date
// @Tags Calendar
// @Accept json
// @Produce json
// @Param request body dto.SetOpenDayRequest true "Set Open Day Request"
// @Success 200 {object} response.Data[dto.OpenDayResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/calendar/open-days [post]
// @Security BearerAuth
func (handler *Handler) SetOpenDay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOpenDay")
	defer scope.End()

	req := dto.SetOpenDayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SetOpenDay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set open day")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
