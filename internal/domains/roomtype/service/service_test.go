package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *roomTypeMocks.MockRoomType
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.RoomType
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomTypeMocks.NewMockRoomType(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func deluxe() model.RoomType {
	return model.RoomType{
		ID:           "rt-1",
		Name:         "Deluxe Room",
		Slug:         "deluxe-room",
		Price:        4500,
		MaxOccupancy: 2,
		ImageURLs:    pq.StringArray{"https://cdn.example.com/room_type/deluxe-room/a.jpg"},
	}
}

func TestRoomTypeService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomTypeRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "slug derived from name",
			req:  dto.CreateRoomTypeRequest{Name: "Deluxe Room", Price: 4500, MaxOccupancy: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m model.RoomType) error {
						assert.Equal(t, "deluxe-room", m.Slug)
						assert.Equal(t, "admin-1", m.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "duplicate slug",
			req:  dto.CreateRoomTypeRequest{Name: "Deluxe Room", Price: 4500, MaxOccupancy: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:      "name without usable characters",
			req:       dto.CreateRoomTypeRequest{Name: "!!!", Price: 4500, MaxOccupancy: 2},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "database error",
			req:  dto.CreateRoomTypeRequest{Name: "Suite", Price: 9000, MaxOccupancy: 4},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, []string{}, res.ImageURLs)
		})
	}
}

func TestRoomTypeService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.RoomType{deluxe()}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.RoomTypes, 1)
	assert.Equal(t, "deluxe-room", res.RoomTypes[0].Slug)
}

func TestRoomTypeService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "cache hit skips database",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "room_type:get:rt-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						value.(*dto.RoomTypeResponse).ID = "rt-1"

						return nil
					})
			},
		},
		{
			name: "loaded from database",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "malformed id",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, &pq.Error{Code: constant.PqErrorCodeInvalidTextRepresentation})
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "rt-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "rt-1", res.ID)
		})
	}
}

func TestRoomTypeService_GetBySlug(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "room_type:slug:deluxe-room", gomock.Any()).Return(cache.ErrMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)

	res, err := f.svc.GetBySlug(context.Background(), "deluxe-room")

	require.NoError(t, err)
	assert.Equal(t, "Deluxe Room", res.Name)
}

func TestRoomTypeService_Update(t *testing.T) {
	price := 5000.0

	tests := []struct {
		name      string
		req       dto.UpdateRoomTypeRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "price changed",
			req:  dto.UpdateRoomTypeRequest{Price: &price},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &price, mod[model.FieldPrice])
						assert.Equal(t, "admin-1", mod[constant.FieldUpdatedBy])

						return nil
					})
			},
		},
		{
			name: "missing room type",
			req:  dto.UpdateRoomTypeRequest{Price: &price},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "malformed id",
			req:  dto.UpdateRoomTypeRequest{Price: &price},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, &pq.Error{Code: constant.PqErrorCodeInvalidTextRepresentation})
			},
			wantCode: 404,
		},
		{
			name: "slug taken",
			req:  dto.UpdateRoomTypeRequest{Slug: "Suite"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(userContext(), tt.req, "rt-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRoomTypeService_UploadImage(t *testing.T) {
	image := &multipart.FileHeader{Filename: "Window.JPG", Size: 1024}
	uploaded := "https://cdn.example.com/room_type/deluxe-room/new.jpg"

	t.Run("appends uploaded url", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "room_type/deluxe-room", gomock.Any(), image).
			DoAndReturn(func(_ context.Context, _, fileName string, _ *multipart.FileHeader) (string, error) {
				assert.Contains(t, fileName, ".jpg")

				return uploaded, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.UploadImage(userContext(), dto.UploadImageRequest{Image: image}, "rt-1")

		require.NoError(t, err)
		assert.Len(t, res.ImageURLs, 2)
		assert.Equal(t, uploaded, res.ImageURLs[1])
	})

	t.Run("removes object when save fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uploaded, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
		f.s3.EXPECT().ObjectKeyFromURL(uploaded).Return("room_type/deluxe-room/new.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "room_type/deluxe-room/new.jpg").Return(nil)

		_, err := f.svc.UploadImage(userContext(), dto.UploadImageRequest{Image: image}, "rt-1")

		assert.Error(t, err)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))

		_, err := f.svc.UploadImage(userContext(), dto.UploadImageRequest{Image: image}, "rt-1")

		assert.Error(t, err)
	})
}

func TestRoomTypeService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "still referenced",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: 409,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "malformed id",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, errors.Join(errors.New("failed to get data (room_type)"), &pq.Error{Code: constant.PqErrorCodeInvalidTextRepresentation}))
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(userContext(), "rt-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
