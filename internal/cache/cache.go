package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OffersViewKey - ключ кэша сравнительной таблицы предложений по заявке.
func OffersViewKey(quoteID string) string {
	return fmt.Sprintf("rfq:view:offers:%s", quoteID)
}

// SearchStateKey - ключ кэша сводки поиска по заявке.
func SearchStateKey(quoteID string) string {
	return fmt.Sprintf("rfq:view:search:%s", quoteID)
}

// ViewCache - кэш собранных представлений заявки. Награждение и его
// отмена обязаны инвалидировать оба ключа заявки.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	InvalidateQuote(ctx context.Context, quoteID string) error
}

// RedisViewCache - реализация ViewCache поверх Redis.
type RedisViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisViewCache создает новый экземпляр RedisViewCache.
func NewRedisViewCache(rdb *redis.Client, ttl time.Duration) *RedisViewCache {
	return &RedisViewCache{rdb: rdb, ttl: ttl}
}

// Get читает закэшированное представление. found=false означает отсутствие ключа.
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Put сохраняет представление с TTL.
func (c *RedisViewCache) Put(ctx context.Context, key string, payload []byte) error {
	return c.rdb.Set(ctx, key, payload, c.ttl).Err()
}

// InvalidateQuote удаляет все представления заявки.
func (c *RedisViewCache) InvalidateQuote(ctx context.Context, quoteID string) error {
	return c.rdb.Del(ctx, OffersViewKey(quoteID), SearchStateKey(quoteID)).Err()
}

// NoopViewCache - заглушка для инсталляций без Redis и для тестов.
type NoopViewCache struct{}

func (NoopViewCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopViewCache) Put(ctx context.Context, key string, payload []byte) error { return nil }

func (NoopViewCache) InvalidateQuote(ctx context.Context, quoteID string) error { return nil }
