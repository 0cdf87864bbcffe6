package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-WalkBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, ownerID int64, admin bool) (*rescheduleBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		OwnerID:   ownerID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Admin:     admin,
	}, nil
}
