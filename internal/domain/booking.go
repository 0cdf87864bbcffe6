package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCompleted        BookingStatus = "completed"
	StatusCompletedAndPaid BookingStatus = "completed&paid"
	StatusCancelled        BookingStatus = "cancelled"
)

// ServiceType вид услуги
type ServiceType string

const (
	ServiceSoloWalk  ServiceType = "solo"
	ServiceQuickWalk ServiceType = "quick"
	ServiceGroupWalk ServiceType = "group"
	ServiceSitting   ServiceType = "sitting"
)

// BookingType single - разовый визит в пределах дня, multi_day - многодневная передержка
type BookingType string

const (
	BookingSingle   BookingType = "single"
	BookingMultiDay BookingType = "multi_day"
)

// Booking represents a booking in the system
type Booking struct {
	ID          int64
	OwnerID     int64
	DogName     string
	ServiceType ServiceType
	BookingType BookingType
	Status      BookingStatus

	// Date - дата визита (для multi_day - первый день), EndDate - последний день передержки.
	// Для single EndDate == Date
	Date    time.Time
	EndDate time.Time
	Start   time.Time
	End     time.Time

	SeriesID    *string
	SeriesIndex *int

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booked time range
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.Start, End: b.End}
}

// IsWalk returns true for bookings limited by the daily walk cap during a sitting
func (b *Booking) IsWalk() bool {
	return b.ServiceType.IsCappedWalk()
}

// IsMultiDay returns true for multi-day sittings
func (b *Booking) IsMultiDay() bool {
	return b.BookingType == BookingMultiDay
}

// IsConfirmed returns true if the booking still holds capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed && b.BookingType == BookingSingle
}

// CoversDate returns true if the booking span contains the date (date-only, inclusive)
func (b *Booking) CoversDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(b.Date)) && !d.After(DateOnly(b.EndDate))
}

// IsCappedWalk returns true for services counted against the walk cap
func (s ServiceType) IsCappedWalk() bool {
	return s == ServiceSoloWalk || s == ServiceQuickWalk
}

// IsValid checks the service type against the known set
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceSoloWalk, ServiceQuickWalk, ServiceGroupWalk, ServiceSitting:
		return true
	}
	return false
}

// IsValid checks the booking type against the known set
func (t BookingType) IsValid() bool {
	return t == BookingSingle || t == BookingMultiDay
}

// CanTransitionTo describes the status lifecycle:
// confirmed -> completed -> completed&paid, confirmed -> cancelled
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCompletedAndPaid || next == StatusCancelled
	case StatusCompleted:
		return next == StatusCompletedAndPaid
	default:
		return false
	}
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusCompleted, StatusCompletedAndPaid, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// DateOnly оставляет только календарную дату (полночь UTC), чтобы даты из разных
// часовых поясов и из колонок DATE сравнивались между собой
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
