package domain

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

// Schedule рабочие правила бизнеса: часовой пояс, рабочие часы, буфер на дорогу
type Schedule struct {
	Location           *time.Location
	WorkdayStart       types.TimeString
	WorkdayEnd         types.TimeString
	TravelBuffer       time.Duration
	MinBookingNotice   time.Duration
	AdvanceBookingDays int // 0 = без ограничений
}

// Envelope returns the working-hours envelope for the calendar date
func (s Schedule) Envelope(date time.Time) WorkdayEnvelope {
	day := s.LocalDate(date)
	return WorkdayEnvelope{
		Date:  day,
		Start: s.WorkdayStart.On(day, s.Location),
		End:   s.WorkdayEnd.On(day, s.Location),
	}
}

// LocalDate returns midnight of the calendar date in the business timezone
func (s Schedule) LocalDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Location)
}

// Today returns the current business-local date
func (s Schedule) Today(now time.Time) time.Time {
	return s.LocalDate(now.In(s.Location))
}

// IsPast returns true if the calendar date is before today in the business timezone
func (s Schedule) IsPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(s.Today(now)))
}

// IsBeyondHorizon returns true if the date exceeds the advance booking window
func (s Schedule) IsBeyondHorizon(date, now time.Time) bool {
	if s.AdvanceBookingDays <= 0 {
		return false
	}
	maxDate := DateOnly(s.Today(now)).AddDate(0, 0, s.AdvanceBookingDays)
	return DateOnly(date).After(maxDate)
}

// EarliestStart returns the earliest start a customer may book at
func (s Schedule) EarliestStart(now time.Time) time.Time {
	return now.In(s.Location).Add(s.MinBookingNotice)
}
