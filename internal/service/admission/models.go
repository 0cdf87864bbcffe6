package admission

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// Config конфигурация контроллера допуска
type Config struct {
	DefaultWalkCap int // лимит прогулок на день активной передержки, если для даты нет override
}

// WalkCapResolution вычисленное состояние даты
type WalkCapResolution struct {
	State          domain.WalkCapState
	Cap            int // имеет смысл только для WalkCapEnforced
	ActiveSittings int
	FromOverride   bool
}

// AdmissionRequest запрос на допуск нового или переносимого бронирования
type AdmissionRequest struct {
	Date        time.Time
	EndDate     time.Time // только для multi_day
	Range       domain.TimeRange
	ServiceType domain.ServiceType
	BookingType domain.BookingType

	// ExcludeBookingID бронирование, которое переносится (не конфликтует само с собой)
	ExcludeBookingID *int64

	// EnforceWalkCap false для админского потока: персонал знает реальную загрузку
	EnforceWalkCap bool
}
