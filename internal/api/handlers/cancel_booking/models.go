package cancel_booking

import (
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// CancelSeriesResponse HTTP response model
type CancelSeriesResponse struct {
	SeriesID  string `json:"seriesId"`
	Cancelled int    `json:"cancelled"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64, admin bool) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		Admin:              admin,
		CancellationReason: r.CancellationReason,
	}
}
