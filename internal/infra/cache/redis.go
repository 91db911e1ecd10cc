package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect создает клиент Redis по URL (redis://...) или адресу host:port и проверяет соединение
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("%w: parse redis url: %v", ErrConnect, err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return client, nil
}

// JSONCache хранит значения в Redis в виде JSON с общим префиксом ключей
type JSONCache struct {
	client redis.Cmdable
	prefix string
}

// NewJSONCache создает кэш поверх клиента Redis
func NewJSONCache(client redis.Cmdable, prefix string) *JSONCache {
	return &JSONCache{client: client, prefix: prefix}
}

// Get читает значение по ключу в dst. Возвращает false, если ключа нет.
func (c *JSONCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCommand, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrUnmarshal, key, err)
	}

	return true, nil
}

// Set сохраняет значение с TTL
func (c *JSONCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCommand, key, err)
	}

	return nil
}

// Delete удаляет ключи из кэша
func (c *JSONCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCommand, err)
	}

	return nil
}
