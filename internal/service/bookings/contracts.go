package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListBySeries(ctx context.Context, seriesID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
