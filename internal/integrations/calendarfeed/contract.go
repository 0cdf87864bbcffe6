package calendarfeed

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-WalkBookingService/internal/interval"
)

// EventSource источник занятых событий календаря на дату
type EventSource interface {
	BusyEvents(ctx context.Context, date time.Time) ([]interval.RawEvent, error)
}

// Cache подмножество команд redis, нужное кэшу (*redis.Client его реализует)
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CacheRecorder получатель метрик попаданий в кэш (опционально)
type CacheRecorder interface {
	ObserveCalendarCache(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
