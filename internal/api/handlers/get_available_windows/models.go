package get_available_windows

import (
	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	getAvailableWindows "github.com/m04kA/SMC-WalkBookingService/internal/usecase/get_available_windows"
)

// WindowResponse свободное окно HH:MM по времени бизнеса
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WalkCapResponse состояние лимита прогулок на дату
type WalkCapResponse struct {
	State     string `json:"state"` // inactive | unlimited | enforced
	Limit     *int   `json:"limit,omitempty"`
	Booked    int    `json:"booked"`
	Remaining *int   `json:"remaining,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string           `json:"date"`
	Windows []WindowResponse `json:"windows"`
	WalkCap WalkCapResponse  `json:"walkCap"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableWindows.Response) *AvailabilityResponse {
	windows := make([]WindowResponse, 0, len(resp.Windows))
	for _, w := range resp.Windows {
		windows = append(windows, WindowResponse{Start: w.Start, End: w.End})
	}

	return &AvailabilityResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Windows: windows,
		WalkCap: WalkCapResponse{
			State:     resp.WalkCap.State.String(),
			Limit:     resp.WalkCap.Limit,
			Booked:    resp.WalkCap.Booked,
			Remaining: resp.WalkCap.Remaining,
		},
	}
}
