package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"salon/config"
	"salon/infras/otel/mocks"
	"salon/shared/cache"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	"salon/transport/http/middleware"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimited(t *testing.T, enable bool, setup func(c *cacheMocks.MockRedisCache)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setup(mockCache)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache)

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func storedCount(count int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, dest any) error {
		*dest.(*int) = count

		return nil
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		setup         func(c *cacheMocks.MockRedisCache)
		wantStatus    int
		wantRemaining string
	}{
		{
			name:   "first request in window",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				c.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantStatus:    http.StatusNoContent,
			wantRemaining: "1",
		},
		{
			name:   "last allowed request",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(storedCount(1))
				c.EXPECT().Save(gomock.Any(), gomock.Any(), 2, 60).Return(nil)
			},
			wantStatus:    http.StatusNoContent,
			wantRemaining: "0",
		},
		{
			name:   "over the limit",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(storedCount(2))
				c.EXPECT().Save(gomock.Any(), gomock.Any(), 3, 60).Return(nil)
			},
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "cache down lets request through",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "disabled",
			enable:     false,
			setup:      func(*cacheMocks.MockRedisCache) {},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newLimited(t, tt.enable, tt.setup)

			req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))

			if tt.wantStatus == http.StatusTooManyRequests {
				assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRetryAfter))
			}
		})
	}
}

func TestRateLimit_KeysByClientAndWindow(t *testing.T) {
	var keys []string

	handler := newLimited(t, true, func(c *cacheMocks.MockRedisCache) {
		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key string, _ any) error {
				keys = append(keys, key)

				return cache.Nil
			}).Times(2)
		c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	})

	for _, addr := range []string{"203.0.113.7:1000", "198.51.100.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if assert.Len(t, keys, 2) {
		assert.NotEqual(t, keys[0], keys[1])
		assert.True(t, strings.HasPrefix(keys[0], "limiter:203.0.113.7|"))
	}
}
