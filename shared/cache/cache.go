package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"salon/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Nil is returned by Get when the key does not exist.
const Nil = redis.Nil

const (
	scopeName    = "cache"
	keyAttribute = "cache.key"
	scanBatch    = 100
)

// RedisCache stores JSON-encoded read models with a TTL in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
}

type bypassKey struct{}

// Bypass marks ctx so read-through services load from the store of record and leave the cache untouched.
func Bypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func Bypassed(ctx context.Context) bool {
	bypass, _ := ctx.Value(bypassKey{}).(bool)

	return bypass
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{client: client, otel: ot}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, scopeName, scopeName+"."+op)
	scope.SetAttribute(keyAttribute, key)

	return ctx, scope
}

func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: encode value")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: set")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache: stored")

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if s, ok := value.(*string); ok {
		*s = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: decode value")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: delete")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = c.client.Del(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", pattern).Int("keys", len(keys)).Msg("cache: clear")

				return fmt.Errorf("failed to delete cache value: %w", err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}
