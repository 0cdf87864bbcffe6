package domain

import "time"

// TimeRange интервал времени, Start <= End
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if both ends are set and Start <= End
func (r TimeRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps returns true if the ranges share a positive-length interval.
// Ranges that only touch (one ends where the other starts) do not overlap
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// WorkdayEnvelope рабочее окно дня, внутри которого предлагаются слоты
type WorkdayEnvelope struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// Range returns the envelope bounds as a TimeRange
func (e WorkdayEnvelope) Range() TimeRange {
	return TimeRange{Start: e.Start, End: e.End}
}

// Contains returns true if r lies fully inside the envelope
func (e WorkdayEnvelope) Contains(r TimeRange) bool {
	return !r.Start.Before(e.Start) && !r.End.After(e.End)
}

// DisplayWindow свободное окно в формате для UI (HH:MM по времени бизнеса)
type DisplayWindow struct {
	Start string
	End   string
}
