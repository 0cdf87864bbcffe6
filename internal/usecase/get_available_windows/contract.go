package get_available_windows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/internal/interval"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/admission"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListConfirmedOnDate подтверждённые разовые бронирования на дату
	ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	// CountConfirmedWalks количество подтверждённых solo/quick прогулок на дату
	CountConfirmedWalks(ctx context.Context, date time.Time, excludeID *int64) (int, error)
}

// CalendarFeed источник занятого времени из личного календаря
type CalendarFeed interface {
	BusyEvents(ctx context.Context, date time.Time) ([]interval.RawEvent, error)
}

// WalkCapResolver определяет действующий лимит прогулок на дату
type WalkCapResolver interface {
	ResolveWalkCap(ctx context.Context, date time.Time) (*admission.WalkCapResolution, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
