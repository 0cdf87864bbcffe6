package calendarfeed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-WalkBookingService/internal/interval"
)

const (
	statusCancelled   = "CANCELLED"
	transpTransparent = "TRANSPARENT"
	maxFeedSize       = 10 << 20
)

// Client клиент iCalendar фида, в котором ведётся личный календарь исполнителя
type Client struct {
	feedURL    string
	httpClient *http.Client
	loc        *time.Location
	log        Logger
}

// NewClient создает клиент фида. Время без часового пояса трактуется в loc
func NewClient(feedURL string, timeout time.Duration, loc *time.Location, log Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		loc: loc,
		log: log,
	}
}

// BusyEvents загружает фид и возвращает события, пересекающие дату (сутки в часовом поясе бизнеса).
// Отменённые и прозрачные (TRANSP:TRANSPARENT) события пропускаются.
// События без DTSTART/DTEND возвращаются с пустыми полями - их отбросит нормализация
func (c *Client) BusyEvents(ctx context.Context, date time.Time) ([]interval.RawEvent, error) {
	if c.feedURL == "" {
		return []interval.RawEvent{}, nil
	}

	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := c.parse(body, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	c.log.Info("Calendar feed: %d busy events for %s", len(events), dayStart.Format("2006-01-02"))
	return events, nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(preview))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(bytes.ToUpper(trimmed), []byte("BEGIN:VCALENDAR")) {
		return nil, fmt.Errorf("%w: expected BEGIN:VCALENDAR", ErrInvalidFeed)
	}

	return trimmed, nil
}

func (c *Client) parse(body []byte, dayStart, dayEnd time.Time) ([]interval.RawEvent, error) {
	decoder := ical.NewDecoder(bytes.NewReader(body))
	events := make([]interval.RawEvent, 0)

	var skippedCancelled, skippedTransparent, missingTime int

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode calendar: %v", ErrInvalidFeed, err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			if prop := comp.Props.Get(ical.PropStatus); prop != nil && strings.EqualFold(prop.Value, statusCancelled) {
				skippedCancelled++
				continue
			}
			if prop := comp.Props.Get(ical.PropTransparency); prop != nil && strings.EqualFold(prop.Value, transpTransparent) {
				skippedTransparent++
				continue
			}

			startProp := comp.Props.Get(ical.PropDateTimeStart)
			start, startOK := c.dateTime(startProp)
			end, endOK := c.dateTime(comp.Props.Get(ical.PropDateTimeEnd))
			if startOK && !endOK {
				end, endOK = endFromDuration(start, comp.Props.Get(ical.PropDuration))
			}
			// событие на весь день без DTEND длится одни сутки
			if startOK && !endOK && isDateOnly(startProp) {
				end, endOK = start.AddDate(0, 0, 1), true
			}

			if !startOK || !endOK {
				missingTime++
				events = append(events, rawEvent(start, startOK, end, endOK))
				continue
			}

			// событие должно пересекать сутки [dayStart, dayEnd)
			if !start.Before(dayEnd) || !end.After(dayStart) {
				continue
			}

			events = append(events, rawEvent(start, true, end, true))
		}
	}

	if skippedCancelled+skippedTransparent+missingTime > 0 {
		c.log.Info("Calendar feed: skipped %d cancelled, %d transparent; %d events without start/end",
			skippedCancelled, skippedTransparent, missingTime)
	}

	return events, nil
}

var rawLayouts = []string{
	"20060102T150405",
	"20060102",
}

// dateTime разбирает DTSTART/DTEND: сначала средствами go-ical, затем по сырому значению
func (c *Client) dateTime(prop *ical.Prop) (time.Time, bool) {
	if prop == nil || strings.TrimSpace(prop.Value) == "" {
		return time.Time{}, false
	}

	if t, err := prop.DateTime(c.loc); err == nil {
		return t, true
	}

	value := strings.TrimSpace(prop.Value)
	if strings.HasSuffix(value, "Z") {
		if t, err := time.Parse("20060102T150405Z", value); err == nil {
			return t, true
		}
	}
	for _, layout := range rawLayouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func isDateOnly(prop *ical.Prop) bool {
	return prop != nil && len(strings.TrimSpace(prop.Value)) == len("20060102")
}

func rawEvent(start time.Time, startOK bool, end time.Time, endOK bool) interval.RawEvent {
	var ev interval.RawEvent
	if startOK {
		ev.Start = start.Format(time.RFC3339)
	}
	if endOK {
		ev.End = end.Format(time.RFC3339)
	}
	return ev
}

// endFromDuration вычисляет конец события по DURATION (RFC 5545 3.3.6), если DTEND не задан
func endFromDuration(start time.Time, prop *ical.Prop) (time.Time, bool) {
	if prop == nil {
		return time.Time{}, false
	}
	d, err := parseDuration(prop.Value)
	if err != nil {
		return time.Time{}, false
	}
	return start.Add(d), true
}

// parseDuration разбирает значения вида P1D, PT1H30M, P2W, -PT15M
func parseDuration(value string) (time.Duration, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	sign := time.Duration(1)
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	s = s[1:]

	var (
		total  time.Duration
		num    int
		digits bool
		inTime bool
	)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			digits = true
		case r == 'T':
			inTime = true
		default:
			if !digits {
				return 0, fmt.Errorf("invalid duration %q", value)
			}
			unit, ok := durationUnit(r, inTime)
			if !ok {
				return 0, fmt.Errorf("invalid duration %q", value)
			}
			total += time.Duration(num) * unit
			num, digits = 0, false
		}
	}
	if digits {
		return 0, fmt.Errorf("invalid duration %q", value)
	}

	return sign * total, nil
}

func durationUnit(r rune, inTime bool) (time.Duration, bool) {
	if inTime {
		switch r {
		case 'H':
			return time.Hour, true
		case 'M':
			return time.Minute, true
		case 'S':
			return time.Second, true
		}
		return 0, false
	}
	switch r {
	case 'W':
		return 7 * 24 * time.Hour, true
	case 'D':
		return 24 * time.Hour, true
	}
	return 0, false
}
