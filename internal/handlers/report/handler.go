package report

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/export", handler.ExportSummary)
	})
}

// GetSummary returns revenue and occupancy per room type.
// @Summary Get the revenue and occupancy report
// @Description Confirmed and completed bookings overlapping the window. No window means all bookings.
// @Tags Report
// @Produce json
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param period query string false "Preset window" Enums(today, this_week, this_month)
// @Success 200 {object} response.Data[dto.ReportResponse] "Report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	filter := gDto.DateFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	summary, err := handler.service.Summary(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// ExportSummary downloads the report as a spreadsheet.
// @Summary Export the report as xlsx
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param period query string false "Preset window" Enums(today, this_week, this_month)
// @Success 200 {file} file "Report workbook"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/export [get]
// @Security BearerAuth
func (handler *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportSummary")
	defer scope.End()

	filter := gDto.DateFilter{}

	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	export, err := handler.service.Export(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export report")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, export.ContentType, export.FileName, export.Content)
}
