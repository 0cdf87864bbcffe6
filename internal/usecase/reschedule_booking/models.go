package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	OwnerID   int64 // владелец из X-User-ID, для админа не проверяется
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Admin     bool
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	Booking *domain.Booking
}
