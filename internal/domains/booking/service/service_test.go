package service_test

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	repoMocks "hotel/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomTypeID = "3f0c7c2e-8a6b-4e55-9d8a-2a5b1c7e9f10"
	room1      = "11111111-1111-4111-8111-111111111111"
	room2      = "22222222-2222-4222-8222-222222222222"
)

type fixture struct {
	repo       *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	roomTypes  *roomTypeMocks.MockRoomType
	transactor *repoMocks.MockTransactor
	publisher  *bookingMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
	svc        service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		roomTypes:  roomTypeMocks.NewMockRoomType(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		publisher:  bookingMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.CodePrefix = "HB"
	cfg.Booking.CodeLength = 8
	cfg.Booking.CodeMaxRetries = 3

	f.svc = service.New(f.repo, f.rooms, f.roomTypes, f.transactor, f.publisher, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) runTransactions() {
	f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func pending(rooms int) model.Booking {
	return model.Booking{
		ID:               "b-1",
		GuestName:        "Asha Rao",
		CheckInDate:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		NumberOfRooms:    rooms,
		RoomTypeID:       roomTypeID,
		RoomType:         "A/C Room",
		BookingStatus:    model.StatusPending,
		ConfirmationCode: "HBX7K2P9QA",
	}
}

func confirmed() model.Booking {
	b := pending(2)
	b.BookingStatus = model.StatusConfirmed
	b.RoomIDs = pq.StringArray{room1, room2}

	return b
}

func availableRoom(id, number string) roomModel.Room {
	return roomModel.Room{ID: id, RoomNumber: number, RoomTypeID: roomTypeID, Status: roomModel.StatusAvailable}
}

func createRequest() dto.CreateBookingRequest {
	rooms := 2

	return dto.CreateBookingRequest{
		GuestName:     "Asha Rao",
		GuestEmail:    "asha@example.com",
		GuestPhone:    "9876543210",
		CheckInDate:   "2025-05-10",
		CheckOutDate:  "2025-05-15",
		NumberOfRooms: &rooms,
		RoomTypeID:    roomTypeID,
	}
}

func TestBookingService_Create(t *testing.T) {
	acRoom := roomTypeModel.RoomType{ID: roomTypeID, Name: "A/C Room", Price: 3000}
	codeCollision := &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.ConstraintConfirmationCode}

	t.Run("pending booking priced from room type", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acRoom, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				assert.Equal(t, 6000.0, b.TotalAmount)
				assert.Equal(t, model.StatusPending, b.BookingStatus)
				assert.True(t, b.PaymentConfirmed)
				assert.Nil(t, b.RoomID)
				assert.Equal(t, "A/C Room", b.RoomType)
				assert.NotEmpty(t, b.QRData)

				return nil
			})

		res, err := f.svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^HB[A-Z0-9]{8}$`), res.ConfirmationCode)
		assert.Equal(t, res.ConfirmationCode, res.Booking.ConfirmationCode)

		code, err := model.ParseScan(res.QRData)
		require.NoError(t, err)
		assert.Equal(t, res.ConfirmationCode, code)
	})

	t.Run("retries on code collision", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acRoom, nil)
		gomock.InOrder(
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(codeCollision),
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.NoError(t, err)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acRoom, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(codeCollision).Times(3)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Error(t, err)
	})

	t.Run("unknown room type", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("check-out before check-in persists nothing", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.CheckOutDate = "2025-05-01"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_GetByCode(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.GetByCode(context.Background(), "HBNOPE0000")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Contains(t, err.Error(), "booking not found")
}

func TestBookingService_GetByCodeNormalisesInput(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "HBX7K2P9QA", args[model.FieldConfirmationCode])

			return pending(1), nil
		})

	res, err := f.svc.GetByCode(context.Background(), " hbx7k2p9qa ")

	require.NoError(t, err)
	assert.Equal(t, "b-1", res.ID)
}

func TestBookingService_GetMalformedID(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{}, fmt.Errorf("failed to get data (booking): %w", &pq.Error{Code: "22P02"}))

	_, err := f.svc.Get(context.Background(), "not-a-uuid")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Scan(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "HBX7K2P9QA", args[model.FieldConfirmationCode])

			return pending(1), nil
		})

	res, err := f.svc.Scan(context.Background(), dto.ScanRequest{Data: `{"code":"HBX7K2P9QA","booking_id":"b-1"}`})

	require.NoError(t, err)
	assert.Equal(t, "b-1", res.ID)

	_, err = f.svc.Scan(context.Background(), dto.ScanRequest{Data: `{"code":`})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{pending(1)}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.BookingFilter{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)

	_, err = f.svc.GetAll(context.Background(), gDto.QueryParams{}, dto.BookingFilter{Status: "archived"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.svc.GetAll(context.Background(), gDto.QueryParams{}, dto.BookingFilter{RoomTypeID: "suite"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_Candidates(t *testing.T) {
	tests := []struct {
		name        string
		rooms       []roomModel.Room
		canAllocate bool
	}{
		{name: "enough rooms", rooms: []roomModel.Room{availableRoom(room1, "101"), availableRoom(room2, "102")}, canAllocate: true},
		{name: "pool too small", rooms: []roomModel.Room{availableRoom(room1, "101")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(2), nil)
			f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.rooms, nil)

			res, err := f.svc.Candidates(staffContext(), "b-1")

			require.NoError(t, err)
			assert.Equal(t, tt.canAllocate, res.CanAllocate)
			assert.Len(t, res.Rooms, len(tt.rooms))
		})
	}
}

func TestBookingService_Allocate(t *testing.T) {
	t.Run("confirms booking and books rooms", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(2), nil)
		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{availableRoom(room1, "101"), availableRoom(room2, "102")}, nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, room1, mod[model.FieldRoomID])
				assert.Equal(t, pq.StringArray{room1, room2}, mod[model.FieldRoomIDs])
				assert.Equal(t, model.StatusConfirmed, mod[model.FieldBookingStatus])

				_, args := filter.GetWhereClause()
				assert.Equal(t, model.StatusPending, args["expected_status"])

				return 1, nil
			})
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, roomModel.StatusBooked, mod[roomModel.FieldStatus])

				return 2, nil
			})

		res, err := f.svc.Allocate(staffContext(), dto.AllocateRequest{RoomIDs: []string{room1, room2}}, "b-1")

		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.BookingStatus)
		assert.Equal(t, []string{room1, room2}, res.RoomIDs)
		require.NotNil(t, res.RoomID)
		assert.Equal(t, room1, *res.RoomID)
	})

	t.Run("room taken concurrently rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(2), nil)
		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{availableRoom(room1, "101"), availableRoom(room2, "102")}, nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		_, err := f.svc.Allocate(staffContext(), dto.AllocateRequest{RoomIDs: []string{room1, room2}}, "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("booking allocated concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(1), nil)
		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{availableRoom(room1, "101")}, nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Allocate(staffContext(), dto.AllocateRequest{RoomIDs: []string{room1}}, "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	tests := []struct {
		name     string
		booking  model.Booking
		roomIDs  []string
		rooms    []roomModel.Room
		wantCode int
	}{
		{name: "not pending", booking: confirmed(), roomIDs: []string{room1, room2}, wantCode: http.StatusConflict},
		{name: "wrong count", booking: pending(2), roomIDs: []string{room1}, wantCode: http.StatusBadRequest},
		{name: "duplicate ids", booking: pending(2), roomIDs: []string{room1, room1}, wantCode: http.StatusBadRequest},
		{
			name:     "room missing",
			booking:  pending(2),
			roomIDs:  []string{room1, room2},
			rooms:    []roomModel.Room{availableRoom(room1, "101")},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "room of another type",
			booking: pending(1),
			roomIDs: []string{room1},
			rooms: []roomModel.Room{{
				ID: room1, RoomNumber: "301", RoomTypeID: "suite", Status: roomModel.StatusAvailable,
			}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "room under maintenance",
			booking: pending(1),
			roomIDs: []string{room1},
			rooms: []roomModel.Room{{
				ID: room1, RoomNumber: "101", RoomTypeID: roomTypeID, Status: roomModel.StatusMaintenance,
			}},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.rooms != nil {
				f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.rooms, nil)
			}

			_, err := f.svc.Allocate(staffContext(), dto.AllocateRequest{RoomIDs: tt.roomIDs}, "b-1")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	t.Run("records arrival", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := f.svc.CheckIn(staffContext(), "b-1")

		require.NoError(t, err)
		assert.NotEmpty(t, res.CheckedInAt)
		assert.Equal(t, "confirmed", res.BookingStatus)
	})

	t.Run("pending booking rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(1), nil)

		_, err := f.svc.CheckIn(staffContext(), "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("already checked in", func(t *testing.T) {
		f := newFixture(t)

		b := confirmed()
		at := time.Now()
		b.CheckedInAt = &at

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

		_, err := f.svc.CheckIn(staffContext(), "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Checkout(t *testing.T) {
	t.Run("completes and frees rooms", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusCompleted, mod[model.FieldBookingStatus])
				assert.Contains(t, mod, model.FieldCheckedOutAt)

				return 1, nil
			})
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, roomModel.StatusAvailable, mod[roomModel.FieldStatus])

				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "rooms.id IN")

				return 2, nil
			})

		res, err := f.svc.Checkout(staffContext(), "b-1")

		require.NoError(t, err)
		assert.Equal(t, "completed", res.BookingStatus)
		assert.NotEmpty(t, res.CheckedOutAt)
	})

	t.Run("legacy single room", func(t *testing.T) {
		f := newFixture(t)

		b := confirmed()
		legacy := room1
		b.RoomIDs = nil
		b.RoomID = &legacy

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, room1, args["id_0"])

				return 1, nil
			})

		_, err := f.svc.Checkout(staffContext(), "b-1")

		assert.NoError(t, err)
	})

	t.Run("pending booking cannot check out", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(1), nil)

		_, err := f.svc.Checkout(staffContext(), "b-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("pending cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(1), nil)
		f.runTransactions()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := f.svc.Cancel(staffContext(), "b-1")

		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.BookingStatus)
	})

	for _, status := range []model.Status{model.StatusConfirmed, model.StatusCompleted, model.StatusCancelled} {
		t.Run(string(status)+" cannot be cancelled", func(t *testing.T) {
			f := newFixture(t)

			b := pending(1)
			b.BookingStatus = status

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

			_, err := f.svc.Cancel(staffContext(), "b-1")

			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	f := newFixture(t)

	b := pending(1)
	b.BookingStatus = model.StatusCompleted

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

	err := f.svc.Update(staffContext(), dto.UpdateBookingRequest{GuestName: "A. Rao"}, "b-1")

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}
