package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/timezone"
	"salon/transport/http/response"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
	defaultWindow     = time.Minute
)

// RateLimit counts requests per client in fixed windows kept in redis. A failing cache lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	window := time.Duration(limiter.WindowSeconds) * time.Second
	if window <= 0 {
		window = defaultWindow
	}

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := timezone.Now()
			bucket := now.Truncate(window)
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientKey(r), strconv.FormatInt(bucket.Unix(), 10))

			count, err := a.hit(r.Context(), cacheKey, int(window.Seconds()))
			if err != nil {
				log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			resetSeconds := int(bucket.Add(window).Sub(now).Seconds()) + 1

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(int(window.Seconds())))
			w.Header().Set(constant.RequestHeaderRateLimitReset, strconv.Itoa(resetSeconds))

			if count > limiter.MaxRequests {
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(resetSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) hit(ctx context.Context, key string, ttlSeconds int) (int, error) {
	var count int

	err := a.cache.Get(ctx, key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		return 0, fmt.Errorf("read request count: %w", err)
	}

	count++

	if err := a.cache.Save(ctx, key, count, ttlSeconds); err != nil {
		return 0, fmt.Errorf("save request count: %w", err)
	}

	return count, nil
}

// clientAddr strips the port from RemoteAddr, which the RealIP middleware has already resolved from proxy headers.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func clientKey(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == constant.Empty {
		ua = unknownUserAgent
	}

	return clientAddr(r) + "|" + ua
}
