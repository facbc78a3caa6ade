package settings

import (
	"net/http"

	"trs/infras/otel"
	"trs/internal/domains/settings"
	"trs/shared/constant"
	"trs/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	provider settings.Provider
	otel     otel.Otel
}

func New(provider settings.Provider, otel otel.Otel) Handler {
	return Handler{
		provider: provider,
		otel:     otel,
	}
}

// ProtectedRouter mounts the endpoints that require an authenticated admin.
func (handler *Handler) ProtectedRouter(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
	})
}

type SettingsResponse struct {
	DefaultOpenTime        string   `json:"default_open_time"`
	DefaultCloseTime       string   `json:"default_close_time"`
	ServingIntervalMinutes int      `json:"serving_interval_minutes"`
	DiningDurationMinutes  int      `json:"dining_duration_minutes"`
	ReservationsPerSlot    int      `json:"reservations_per_slot"`
	NotificationEmails     []string `json:"notification_emails"`
	NotificationPhones     []string `json:"notification_phones"`
}

func (handler *Handler) GetSettings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	current, err := handler.provider.Current(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load venue settings")

		response.WithError(writer, err)

		return
	}

	res := SettingsResponse{
		DefaultOpenTime:        current.DefaultOpenTime.Format(constant.ClockFormat),
		DefaultCloseTime:       current.DefaultCloseTime.Format(constant.ClockFormat),
		ServingIntervalMinutes: int(current.ServingInterval.Minutes()),
		DiningDurationMinutes:  int(current.DiningDuration.Minutes()),
		ReservationsPerSlot:    current.ReservationsPerSlot,
		NotificationEmails:     current.NotificationEmails,
		NotificationPhones:     current.NotificationPhones,
	}

	response.WithJSON(writer, http.StatusOK, res)
}
