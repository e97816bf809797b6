package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rooms", total: 0, limit: 10, want: 1},
		{name: "missing limit", total: 25, limit: 0, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single page", total: 3, limit: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type guestUpdate struct {
	GuestName       string  `db:"guest_name"`
	GuestPhone      string  `db:"guest_phone"`
	Floor           *int    `db:"floor"`
	SpecialRequests *string `db:"special_requests"`
	Internal        string  `db:"-"`
	Untagged        string
}

func TestTransformFields(t *testing.T) {
	floor := 0
	note := "late arrival"

	tests := []struct {
		name string
		data guestUpdate
		want map[string]any
	}{
		{
			name: "only set fields are updated",
			data: guestUpdate{GuestName: "Asha Rao", Internal: "x", Untagged: "y"},
			want: map[string]any{"guest_name": "Asha Rao"},
		},
		{
			name: "pointer to zero value is kept",
			data: guestUpdate{Floor: &floor, SpecialRequests: &note},
			want: map[string]any{"floor": &floor, "special_requests": &note},
		},
		{
			name: "nothing to update",
			data: guestUpdate{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.TransformFields(tt.data, "staff-1")

			assert.Equal(t, "staff-1", got[constant.FieldUpdatedBy])
			assert.IsType(t, time.Time{}, got[constant.FieldUpdatedAt])

			delete(got, constant.FieldUpdatedBy)
			delete(got, constant.FieldUpdatedAt)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("8d7e", "id", "rooms")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "8d7e", Operator: dto.FilterOperatorEq, Table: "rooms"}, group.Filters[0])
}

func TestConvertStringToInt(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("two"))
	assert.Equal(t, 3, *shared.ConvertStringToInt("3"))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get", shared.BuildCacheKey("booking:get"))
	assert.Equal(t, "booking:get:abc", shared.BuildCacheKey("booking:get", "abc"))
	assert.Equal(t, "booking:code:HB:1", shared.BuildCacheKey("booking:code", "HB", "1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	pending := shared.FilterByID("pending", "booking_status", "bookings")
	confirmed := shared.FilterByID("confirmed", "booking_status", "bookings")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	again := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, confirmed)
	nextPage := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, pending)

	assert.True(t, strings.HasPrefix(first, "booking:gets:"))
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "room:gets", "room:count")
}
