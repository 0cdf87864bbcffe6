package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID     int64
	DogName     string
	ServiceType domain.ServiceType
	BookingType domain.BookingType
	Date        time.Time        // Дата визита или первый день передержки
	EndDate     *time.Time       // Последний день передержки (только multi_day)
	StartTime   types.TimeString // Начало визита / время, когда собаку привозят
	EndTime     types.TimeString // Конец визита / время, когда собаку забирают
	Recurrence  *string          // RRULE для серии, например FREQ=WEEKLY;COUNT=4
	Notes       *string
	Admin       bool // Создание из админки: лимит прогулок и рабочие часы не проверяются
}

// Response модель ответа. Для серии содержит все созданные визиты по порядку
type Response struct {
	SeriesID *string
	Bookings []*domain.Booking
}

// UUIDGenerator генерирует series_id через google/uuid
type UUIDGenerator struct{}

// NewSeriesID возвращает новый UUID v4
func (UUIDGenerator) NewSeriesID() string {
	return uuid.NewString()
}

// occurrence один визит серии до сохранения
type occurrence struct {
	date  time.Time
	rng   domain.TimeRange
	index int
}
