package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Report interface {
	Summary(ctx context.Context, filter gDto.DateFilter) (dto.ReportResponse, error)
	Export(ctx context.Context, filter gDto.DateFilter) (dto.ExportResponse, error)
}

type serviceImpl struct {
	roomTypeRepo roomTypeRepo.RoomType
	roomRepo     roomRepo.Room
	bookingRepo  bookingRepo.Booking
	otel         otel.Otel
}

func New(roomTypeRepo roomTypeRepo.RoomType, roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, otel otel.Otel) Report {
	return &serviceImpl{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		otel:         otel,
	}
}

// Summary aggregates revenue and occupancy per room type. Reports always
// read from the database.
func (s *serviceImpl) Summary(ctx context.Context, filter gDto.DateFilter) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomTypes, err := s.roomTypeRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomTypeModel.FieldPrice, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field: bookingModel.FieldBookingStatus, Value: model.ReportableStatuses,
				Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName,
			},
			filter.OverlapFilter(bookingModel.TableName, bookingModel.FieldCheckInDate, bookingModel.FieldCheckOutDate),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = model.Summarize(roomTypes, rooms, bookings)

	if !filter.IsZero() {
		from, to := filter.Window()
		res.From = from.Format(constant.DateOnlyFormat)
		res.To = to.Format(constant.DateOnlyFormat)
	}

	return res, nil
}

func (s *serviceImpl) Export(ctx context.Context, filter gDto.DateFilter) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	summary, err := s.Summary(ctx, filter)
	if err != nil {
		return res, err
	}

	content, err := writeWorkbook(summary)
	if err != nil {
		log.Error().Err(err).Msg("failed to write report workbook")

		return res, fmt.Errorf("failed to write report workbook: %w", err)
	}

	return dto.ExportResponse{
		FileName:    summary.FileName(),
		ContentType: constant.ContentTypeXLSX,
		Content:     content,
	}, nil
}
