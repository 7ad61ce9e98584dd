package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"

	scanBatch = 100
)

// RedisClient подмножество *redis.Client, используемое кэшем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Metrics счётчик обращений к кэшу
type Metrics interface {
	ObserveCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш каталога салона в Redis. Nil *Cache всегда промахивается,
// ошибки Redis логируются и трактуются как промах.
type Cache struct {
	client  RedisClient
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// New создает кэш; client == nil выключает кэширование
func New(client RedisClient, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// GetCategories категории салона из кэша
func (c *Cache) GetCategories(ctx context.Context, shopID int64) ([]*domain.Category, bool) {
	if c == nil {
		return nil, false
	}
	var categories []*domain.Category
	if !c.get(ctx, categoriesKey(shopID), &categories) {
		return nil, false
	}
	return categories, true
}

// SetCategories сохраняет категории салона
func (c *Cache) SetCategories(ctx context.Context, shopID int64, categories []*domain.Category) {
	if c == nil {
		return
	}
	c.set(ctx, categoriesKey(shopID), categories)
}

// GetServices услуги салона из кэша
func (c *Cache) GetServices(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, bool) {
	if c == nil {
		return nil, false
	}
	var services []*domain.Service
	if !c.get(ctx, servicesKey(filter), &services) {
		return nil, false
	}
	return services, true
}

// SetServices сохраняет выборку услуг
func (c *Cache) SetServices(ctx context.Context, filter domain.ServicesFilter, services []*domain.Service) {
	if c == nil {
		return
	}
	c.set(ctx, servicesKey(filter), services)
}

// Invalidate удаляет все ключи каталога салона
func (c *Cache) Invalidate(ctx context.Context, shopID int64) {
	if c == nil {
		return
	}

	keys := []string{categoriesKey(shopID)}
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, fmt.Sprintf("catalog:%d:services:*", shopID), scanBatch).Result()
		if err != nil {
			c.logger.Warn("Invalidate: scan failed shop_id=%d: %v", shopID, err)
			break
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Invalidate: delete failed shop_id=%d: %v", shopID, err)
	}
}

func (c *Cache) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(resultMiss)
		return false
	}
	if err != nil {
		c.observe(resultError)
		c.logger.Warn("get: key=%s: %v", key, err)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.observe(resultError)
		c.logger.Warn("get: decode key=%s: %v", key, err)
		return false
	}

	c.observe(resultHit)
	return true
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("set: encode key=%s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("set: key=%s: %v", key, err)
	}
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.ObserveCache(result)
	}
}

func categoriesKey(shopID int64) string {
	return fmt.Sprintf("catalog:%d:categories", shopID)
}

func servicesKey(filter domain.ServicesFilter) string {
	category := "all"
	if filter.CategoryID != nil {
		category = strconv.FormatInt(*filter.CategoryID, 10)
	}
	active := "active"
	if filter.IncludeInactive {
		active = "all"
	}
	return fmt.Sprintf("catalog:%d:services:%s:%s", filter.ShopID, category, active)
}
