package interval

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// RawEvent занятое событие из внешнего календаря в исходном виде (ISO-8601).
// Любое из полей может отсутствовать
type RawEvent struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalize переводит сырые события в интервалы с точностью до миллисекунды.
// События без начала/конца, с нечитаемым временем или с start > end отбрасываются
// и учитываются в dropped - это не ошибка, а отсутствие информации
func Normalize(raw []RawEvent, loc *time.Location) (valid []domain.TimeRange, dropped int) {
	valid = make([]domain.TimeRange, 0, len(raw))

	for _, ev := range raw {
		start, ok := parseTimestamp(ev.Start, loc)
		if !ok {
			dropped++
			continue
		}
		end, ok := parseTimestamp(ev.End, loc)
		if !ok {
			dropped++
			continue
		}

		r := domain.TimeRange{Start: start, End: end}
		if !r.IsValid() {
			dropped++
			continue
		}
		valid = append(valid, r)
	}

	return valid, dropped
}

// parseTimestamp разбирает ISO-8601; время без смещения трактуется в loc
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Millisecond), true
		}
	}

	return time.Time{}, false
}
