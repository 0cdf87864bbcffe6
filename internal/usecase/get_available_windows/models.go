package get_available_windows

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// Request модель запроса свободных окон
type Request struct {
	Date time.Time // Дата (время игнорируется)
}

// Response модель ответа со свободными окнами
type Response struct {
	Date    time.Time
	Windows []domain.DisplayWindow
	WalkCap WalkCapInfo
}

// WalkCapInfo состояние лимита прогулок на дату для отображения в UI
type WalkCapInfo struct {
	State     domain.WalkCapState
	Limit     *int // nil, если лимит не действует
	Booked    int
	Remaining *int
}
