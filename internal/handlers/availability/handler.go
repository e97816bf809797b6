package availability

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/service"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/rooms/status", handler.GetRoomStatuses)
}

// GetRoomStatuses projects every room onto a day or a date range.
// @Summary Get effective room statuses
// @Description Stored status next to the status derived from confirmed bookings. Defaults to today.
// @Tags Availability
// @Produce json
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param period query string false "Preset window" Enums(today, this_week, this_month)
// @Param room_type_id query string false "Only rooms of this type"
// @Success 200 {object} response.Data[dto.RoomStatusesResponse] "Room statuses"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/status [get]
func (handler *Handler) GetRoomStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatuses")
	defer scope.End()

	filter := gDto.DateFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	statuses, err := handler.service.RoomStatuses(ctx, filter, r.URL.Query().Get(roomModel.FieldRoomTypeID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to project room statuses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statuses)
}
