// Package interval содержит чистую алгебру интервалов для расчёта свободных окон:
// расширение занятых событий на буфер дороги, слияние пересечений и инверсию
// занятого времени в свободное в пределах рабочего дня.
package interval

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// PadEvent расширяет событие на buffer с каждой стороны, кроме той,
// что совпадает с границей рабочего дня: перед первым визитом дня
// и после последнего ехать неоткуда и некуда
func PadEvent(event domain.TimeRange, buffer time.Duration, env domain.WorkdayEnvelope) domain.TimeRange {
	padded := event
	if !event.Start.Equal(env.Start) {
		padded.Start = event.Start.Add(-buffer)
	}
	if !event.End.Equal(env.End) {
		padded.End = event.End.Add(buffer)
	}
	return padded
}

// MergeOverlapping сливает пересекающиеся интервалы за один проход.
// Вход должен быть отсортирован по Start. Касание (next.Start == current.End)
// считается пересечением, поэтому результат попарно не пересекается и не соприкасается
func MergeOverlapping(ranges []domain.TimeRange) []domain.TimeRange {
	merged := make([]domain.TimeRange, 0, len(ranges))
	if len(ranges) == 0 {
		return merged
	}

	current := ranges[0]
	for _, next := range ranges[1:] {
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

// Invert превращает отсортированный непересекающийся список занятых интервалов
// в свободные окна внутри env. Окна нулевой длины не возвращаются
func Invert(merged []domain.TimeRange, env domain.WorkdayEnvelope) []domain.TimeRange {
	free := make([]domain.TimeRange, 0, len(merged)+1)
	cursor := env.Start

	for _, busy := range merged {
		gapEnd := busy.Start
		if gapEnd.After(env.End) {
			gapEnd = env.End
		}
		if gapEnd.After(cursor) {
			free = append(free, domain.TimeRange{Start: cursor, End: gapEnd})
		}
		if busy.End.After(cursor) {
			cursor = busy.End
		}
	}

	if cursor.Before(env.End) {
		free = append(free, domain.TimeRange{Start: cursor, End: env.End})
	}

	return free
}

// ComputeAvailability полный конвейер: pad -> sort -> merge -> invert.
// Срез busy не изменяется
func ComputeAvailability(busy []domain.TimeRange, env domain.WorkdayEnvelope, buffer time.Duration) []domain.TimeRange {
	padded := make([]domain.TimeRange, len(busy))
	for i, event := range busy {
		padded[i] = PadEvent(event, buffer, env)
	}

	SortByStart(padded)

	return Invert(MergeOverlapping(padded), env)
}

// SortByStart стабильно сортирует интервалы по началу
func SortByStart(ranges []domain.TimeRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})
}

// Clip обрезает интервал по границам env. ok == false, если пересечения нет
func Clip(r domain.TimeRange, env domain.WorkdayEnvelope) (domain.TimeRange, bool) {
	if r.Start.Before(env.Start) {
		r.Start = env.Start
	}
	if r.End.After(env.End) {
		r.End = env.End
	}
	return r, r.Start.Before(r.End)
}

// FormatWindows форматирует окна как HH:MM в часовом поясе бизнеса
func FormatWindows(ranges []domain.TimeRange, loc *time.Location) []domain.DisplayWindow {
	windows := make([]domain.DisplayWindow, len(ranges))
	for i, r := range ranges {
		windows[i] = domain.DisplayWindow{
			Start: r.Start.In(loc).Format(domain.TimeFormat),
			End:   r.End.In(loc).Format(domain.TimeFormat),
		}
	}
	return windows
}
