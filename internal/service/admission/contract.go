package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	// ListConfirmedOnDate подтверждённые разовые бронирования на дату
	ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	// ListActiveSittings подтверждённые multi_day бронирования, чей период содержит дату
	ListActiveSittings(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	// ListSittingsOverlapping подтверждённые multi_day бронирования, пересекающие период [from, to]
	ListSittingsOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	// CountConfirmedWalks количество подтверждённых solo/quick прогулок на дату, excludeID не учитывается
	CountConfirmedWalks(ctx context.Context, date time.Time, excludeID *int64) (int, error)
}

// WalkLimitRepository интерфейс репозитория переопределений лимита прогулок
type WalkLimitRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.WalkLimitOverride, error)
}

// DecisionRecorder получатель метрик решений (опционально)
type DecisionRecorder interface {
	ObserveAdmission(admitted bool, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
