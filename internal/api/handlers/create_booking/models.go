package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-WalkBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerID     int64   `json:"ownerId,omitempty"` // только админка, в публичном API берётся из X-User-ID
	DogName     string  `json:"dogName" validate:"required,max=100"`
	ServiceType string  `json:"serviceType" validate:"required,oneof=solo quick group sitting"`
	BookingType string  `json:"bookingType,omitempty" validate:"omitempty,oneof=single multi_day"`
	Date        string  `json:"date" validate:"required"`
	EndDate     *string `json:"endDate,omitempty"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	Recurrence  *string `json:"recurrence,omitempty" validate:"omitempty,max=200"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	SeriesID *string                  `json:"seriesId,omitempty"`
	Bookings []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(ownerID int64, admin bool) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	var endDate *time.Time
	if r.EndDate != nil {
		parsed, err := handlers.ParseDate(*r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		endDate = &parsed
	}

	startTime, err := parseOptionalTime(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	endTime, err := parseOptionalTime(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	serviceType := domain.ServiceType(r.ServiceType)
	bookingType := domain.BookingType(r.BookingType)
	if bookingType == "" {
		bookingType = domain.BookingSingle
		if serviceType == domain.ServiceSitting {
			bookingType = domain.BookingMultiDay
		}
	}

	return &createBooking.Request{
		OwnerID:     ownerID,
		DogName:     r.DogName,
		ServiceType: serviceType,
		BookingType: bookingType,
		Date:        date,
		EndDate:     endDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Recurrence:  r.Recurrence,
		Notes:       r.Notes,
		Admin:       admin,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		SeriesID: resp.SeriesID,
		Bookings: models.FromDomainBookingList(resp.Bookings).Bookings,
	}
}

func parseOptionalTime(raw string) (types.TimeString, error) {
	if raw == "" {
		return types.TimeString{}, nil
	}
	return types.NewTimeStringFromString(raw)
}
