package walklimits

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// WalkLimitRepository интерфейс репозитория переопределений лимита прогулок
type WalkLimitRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.WalkLimitOverride, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.WalkLimitOverride, error)
	Upsert(ctx context.Context, override *domain.WalkLimitOverride) (*domain.WalkLimitOverride, error)
	Delete(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
