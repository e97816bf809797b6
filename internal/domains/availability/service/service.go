package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	RoomStatuses(ctx context.Context, filter gDto.DateFilter, roomTypeID string) (dto.RoomStatusesResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

// RoomStatuses projects every room onto the window of filter. Without a
// filter the projection is for today. Results are never cached.
func (s *serviceImpl) RoomStatuses(ctx context.Context, filter gDto.DateFilter, roomTypeID string) (res dto.RoomStatusesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.RoomStatuses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if filter.IsZero() {
		today := timezone.Today()
		filter.Date = &today
	}

	from, to := filter.Window()

	roomFilter := gDto.FilterGroup{}
	if roomTypeID != constant.Empty {
		if err = validator.ValidateID(roomModel.FieldRoomTypeID, roomTypeID); err != nil {
			return res, err
		}

		roomFilter.Filters = append(roomFilter.Filters, gDto.Filter{
			Field: roomModel.FieldRoomTypeID, Value: roomTypeID, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName,
		})
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}, roomFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	// Stays still running on from, or starting later, can affect the window.
	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookingStatus, Value: bookingModel.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{ArgName: "window_from", Field: bookingModel.FieldCheckOutDate, Value: from, Operator: gDto.FilterOperatorGreater, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.NewRoomStatusesResponse(from.Format(constant.DateOnlyFormat), to.Format(constant.DateOnlyFormat))

	for _, room := range rooms {
		res.Add(room, model.Project(room, bookings, filter))
	}

	return res, nil
}
