package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// expandRecurrence разворачивает RRULE начиная с first. Правило должно быть ограничено
// COUNT или UNTIL и давать не больше MaxSeriesOccurrences визитов
func expandRecurrence(rule string, first time.Time, loc *time.Location) ([]time.Time, error) {
	rule = strings.TrimSpace(rule)
	// без FREQ библиотека молча подставляет YEARLY
	if !strings.Contains(strings.ToUpper(rule), "FREQ=") {
		return nil, fmt.Errorf("%w: FREQ is required", ErrInvalidRecurrence)
	}

	opt, err := rrule.StrToROptionInLocation(rule, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	if opt.Freq > rrule.DAILY {
		return nil, fmt.Errorf("%w: frequency must be at least daily", ErrInvalidRecurrence)
	}
	if opt.Count == 0 && opt.Until.IsZero() {
		return nil, fmt.Errorf("%w: COUNT or UNTIL is required", ErrInvalidRecurrence)
	}
	if opt.Count > domain.MaxSeriesOccurrences {
		return nil, fmt.Errorf("%w: at most %d occurrences allowed", ErrInvalidRecurrence, domain.MaxSeriesOccurrences)
	}

	opt.Dtstart = first
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	starts := make([]time.Time, 0, domain.MaxSeriesOccurrences)
	next := r.Iterator()
	for {
		t, ok := next()
		if !ok {
			break
		}
		if len(starts) == domain.MaxSeriesOccurrences {
			return nil, fmt.Errorf("%w: at most %d occurrences allowed", ErrInvalidRecurrence, domain.MaxSeriesOccurrences)
		}
		starts = append(starts, t.In(loc))
	}

	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: rule produces no occurrences", ErrInvalidRecurrence)
	}

	return starts, nil
}
