package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	roomTypes *roomTypeMocks.MockRoomType
	rooms     *roomMocks.MockRoom
	bookings  *bookingMocks.MockBooking
	svc       service.Report
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		roomTypes: roomTypeMocks.NewMockRoomType(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
	}
	f.svc = service.New(f.roomTypes, f.rooms, f.bookings, otelMocks.NewOtel())

	return f
}

func (f fixture) seed() {
	rooms := make([]roomModel.Room, 0, 10)
	for _, id := range []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9"} {
		rooms = append(rooms, roomModel.Room{ID: id, RoomTypeID: "ac"})
	}

	f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomTypeModel.RoomType{{ID: "ac", Name: "A/C Room"}}, nil)
	f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			where, args := filter.GetWhereClause()
			if !strings.Contains(where, "bookings.booking_status IN") {
				return nil, errors.New("missing status filter")
			}

			if args["booking_status_0"] != bookingModel.StatusConfirmed || args["booking_status_1"] != bookingModel.StatusCompleted {
				return nil, errors.New("unexpected statuses")
			}

			return []bookingModel.Booking{
				{RoomTypeID: "ac", TotalAmount: 6000, RoomIDs: pq.StringArray{"r0", "r1"}},
				{RoomTypeID: "ac", TotalAmount: 3000, RoomIDs: pq.StringArray{"r2"}},
			}, nil
		})
}

func TestReportService_Summary(t *testing.T) {
	f := newFixture(t)
	f.seed()

	res, err := f.svc.Summary(context.Background(), gDto.DateFilter{})

	require.NoError(t, err)
	require.Len(t, res.RoomTypes, 1)
	assert.Empty(t, res.From)
	assert.Equal(t, 9000.0, res.RoomTypes[0].TotalRevenue)
	assert.Equal(t, 4500.0, res.RoomTypes[0].AverageRate)
	assert.InDelta(t, 30.0, res.RoomTypes[0].OccupancyRate, 0.0001)
}

func TestReportService_SummaryWindow(t *testing.T) {
	f := newFixture(t)
	f.seed()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	res, err := f.svc.Summary(context.Background(), gDto.DateFilter{From: &from, To: &to})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", res.From)
	assert.Equal(t, "2025-06-30", res.To)
}

func TestReportService_SummaryErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(f fixture)
	}{
		{
			name: "room types",
			setup: func(f fixture) {
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
			},
		},
		{
			name: "rooms",
			setup: func(f fixture) {
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
			},
		},
		{
			name: "bookings",
			setup: func(f fixture) {
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.svc.Summary(context.Background(), gDto.DateFilter{})

			require.ErrorIs(t, err, boom)
		})
	}
}

func TestReportService_Export(t *testing.T) {
	f := newFixture(t)
	f.seed()

	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	res, err := f.svc.Export(context.Background(), gDto.DateFilter{Date: &date})

	require.NoError(t, err)
	assert.Equal(t, "report-2025-06-04.xlsx", res.FileName)
	assert.Equal(t, constant.ContentTypeXLSX, res.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(res.Content))
	require.NoError(t, err)

	defer book.Close()

	assert.Equal(t, []string{"Summary"}, book.GetSheetList())

	header, err := book.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room Type", header)

	name, err := book.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "A/C Room", name)

	total, err := book.GetCellValue("Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	revenue, err := book.GetCellValue("Summary", "F3")
	require.NoError(t, err)
	assert.Equal(t, "9000", revenue)
}
