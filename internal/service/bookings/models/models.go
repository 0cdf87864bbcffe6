package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"userId"`
	Admin              bool    `json:"-"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования (админка)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetOwnerBookingsRequest запрос на получение бронирований владельца
type GetOwnerBookingsRequest struct {
	OwnerID int64   `json:"ownerId"`
	Status  *string `json:"status,omitempty"`
}

// ListByDateRequest запрос на получение бронирований на дату (админка)
type ListByDateRequest struct {
	Date   time.Time `json:"date"`
	Status *string   `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	DogName     string `json:"dogName"`
	ServiceType string `json:"serviceType"`
	BookingType string `json:"bookingType"`
	Status      string `json:"status"`
	Date        string `json:"date"`    // "2025-06-12"
	EndDate     string `json:"endDate"` // совпадает с date для разовых визитов
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Start       string `json:"start"` // RFC 3339 с часовым поясом бизнеса
	End         string `json:"end"`

	SeriesID    *string `json:"seriesId,omitempty"`
	SeriesIndex *int    `json:"seriesIndex,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		OwnerID:            b.OwnerID,
		DogName:            b.DogName,
		ServiceType:        string(b.ServiceType),
		BookingType:        string(b.BookingType),
		Status:             string(b.Status),
		Date:               b.Date.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		StartTime:          b.Start.Format(domain.TimeFormat),
		EndTime:            b.End.Format(domain.TimeFormat),
		Start:              b.Start.Format(time.RFC3339),
		End:                b.End.Format(time.RFC3339),
		SeriesID:           b.SeriesID,
		SeriesIndex:        b.SeriesIndex,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
