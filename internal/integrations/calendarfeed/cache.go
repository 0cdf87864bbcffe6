package calendarfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-WalkBookingService/internal/interval"
)

const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheError    = "error"
	cacheKeyStart = "walkbooking:calendar:"
)

// CachedClient кэширует занятые события фида в redis по ключу даты.
// Ошибки redis не ломают запрос - событие загружается напрямую из фида
type CachedClient struct {
	source   EventSource
	cache    Cache
	ttl      time.Duration
	recorder CacheRecorder
	log      Logger
}

// NewCachedClient оборачивает источник событий кэшем. recorder может быть nil
func NewCachedClient(source EventSource, cache Cache, ttl time.Duration, recorder CacheRecorder, log Logger) *CachedClient {
	return &CachedClient{
		source:   source,
		cache:    cache,
		ttl:      ttl,
		recorder: recorder,
		log:      log,
	}
}

// BusyEvents возвращает события из кэша или из фида с последующей записью в кэш
func (c *CachedClient) BusyEvents(ctx context.Context, date time.Time) ([]interval.RawEvent, error) {
	key := cacheKey(date)

	cached, err := c.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var events []interval.RawEvent
		if jsonErr := json.Unmarshal([]byte(cached), &events); jsonErr == nil {
			c.observe(CacheHit)
			return events, nil
		}
		c.log.Warn("Calendar cache: corrupted entry %s, refetching", key)
		c.observe(CacheError)
	case errors.Is(err, redis.Nil):
		c.observe(CacheMiss)
	default:
		c.log.Warn("Calendar cache: get %s failed, falling back to feed: %v", key, err)
		c.observe(CacheError)
	}

	events, err := c.source.BusyEvents(ctx, date)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, events)
	return events, nil
}

func (c *CachedClient) store(ctx context.Context, key string, events []interval.RawEvent) {
	payload, err := json.Marshal(events)
	if err != nil {
		c.log.Warn("Calendar cache: failed to encode events for %s: %v", key, err)
		return
	}

	if err := c.cache.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Calendar cache: set %s failed: %v", key, err)
	}
}

func (c *CachedClient) observe(outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveCalendarCache(outcome)
	}
}

func cacheKey(date time.Time) string {
	return fmt.Sprintf("%s%s", cacheKeyStart, date.Format("2006-01-02"))
}
