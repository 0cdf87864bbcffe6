package domain

// Default configuration values
const (
	DefaultWalkCap                 = 4
	DefaultTravelBufferMinutes     = 15
	DefaultWorkdayStart            = "09:00"
	DefaultWorkdayEnd              = "20:00"
	DefaultTimezone                = "Europe/London"
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Business validation constants
const (
	MaxSeriesOccurrences        = 52
	MaxSittingDays              = 60
	MaxWalkCap                  = 50
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WalkServiceTypes услуги, учитываемые в лимите прогулок во время передержки
var WalkServiceTypes = []ServiceType{
	ServiceSoloWalk,
	ServiceQuickWalk,
}
