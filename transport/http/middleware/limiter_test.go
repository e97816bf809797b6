package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:     "disabled",
			wantCode: http.StatusOK,
		},
		{
			name:    "first request in window",
			enabled: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrMiss)
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "2",
		},
		{
			name:    "over the limit",
			enabled: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*int)) = 3

						return nil
					})
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name:    "cache unavailable fails open",
			enabled: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(redisCache)
			}

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
			handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/room-types", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
