package get_available_windows

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/internal/interval"
	"github.com/m04kA/SMC-WalkBookingService/pkg/ptr"
)

// UseCase use case для получения свободных окон на дату
type UseCase struct {
	schedule     domain.Schedule
	bookingRepo  BookingRepository
	feed         CalendarFeed
	walkCap      WalkCapResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule domain.Schedule,
	bookingRepo BookingRepository,
	feed CalendarFeed,
	walkCap WalkCapResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:     schedule,
		bookingRepo:  bookingRepo,
		feed:         feed,
		walkCap:      walkCap,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableWindows: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := uc.schedule.LocalDate(req.Date)

	uc.logger.Info("GetAvailableWindows: date=%s", date.Format(domain.DateFormat))

	// 1. Дата должна быть в пределах горизонта бронирования
	if err := validateDate(uc.schedule, date, now); err != nil {
		uc.logger.Warn("GetAvailableWindows: date validation failed: %v", err)
		return nil, err
	}

	// 2. Занятое время из календаря
	raw, err := uc.feed.BusyEvents(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to load calendar feed: %v", err)
		return nil, fmt.Errorf("%w: failed to load calendar feed: %v", ErrInternal, err)
	}

	busy, dropped := interval.Normalize(raw, uc.schedule.Location)
	if dropped > 0 {
		uc.logger.Warn("GetAvailableWindows: dropped %d calendar events without valid start/end", dropped)
	}

	// 3. Подтверждённые визиты из базы тоже занимают время
	bookings, err := uc.bookingRepo.ListConfirmedOnDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		busy = append(busy, b.Range())
	}

	// 4. pad -> sort -> merge -> invert
	envelope := uc.schedule.Envelope(date)
	free := interval.ComputeAvailability(busy, envelope, uc.schedule.TravelBuffer)

	// 5. Сегодня нельзя предлагать окна раньше now + min notice
	if domain.SameDate(date, uc.schedule.Today(now)) {
		free = clipToEarliest(free, envelope, uc.schedule.EarliestStart(now))
	}

	walkCap, err := uc.walkCapInfo(ctx, date)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableWindows: %d windows for %s (busy=%d, walk cap %s)",
		len(free), date.Format(domain.DateFormat), len(busy), walkCap.State)

	return &Response{
		Date:    date,
		Windows: interval.FormatWindows(free, uc.schedule.Location),
		WalkCap: walkCap,
	}, nil
}

// walkCapInfo показывает, сколько прогулок ещё можно взять на дату
func (uc *UseCase) walkCapInfo(ctx context.Context, date time.Time) (WalkCapInfo, error) {
	resolution, err := uc.walkCap.ResolveWalkCap(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to resolve walk cap: %v", err)
		return WalkCapInfo{}, fmt.Errorf("%w: failed to resolve walk cap: %v", ErrInternal, err)
	}

	info := WalkCapInfo{State: resolution.State}
	if resolution.State != domain.WalkCapEnforced {
		return info, nil
	}

	booked, err := uc.bookingRepo.CountConfirmedWalks(ctx, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to count walks: %v", err)
		return WalkCapInfo{}, fmt.Errorf("%w: failed to count walks: %v", ErrInternal, err)
	}

	remaining := resolution.Cap - booked
	if remaining < 0 {
		remaining = 0
	}

	info.Limit = ptr.Ptr(resolution.Cap)
	info.Booked = booked
	info.Remaining = ptr.Ptr(remaining)
	return info, nil
}

// clipToEarliest отрезает от окон всё, что начинается раньше earliest
func clipToEarliest(windows []domain.TimeRange, env domain.WorkdayEnvelope, earliest time.Time) []domain.TimeRange {
	if !earliest.After(env.Start) {
		return windows
	}

	bounds := domain.WorkdayEnvelope{Date: env.Date, Start: earliest, End: env.End}
	clipped := make([]domain.TimeRange, 0, len(windows))
	for _, w := range windows {
		if c, ok := interval.Clip(w, bounds); ok {
			clipped = append(clipped, c)
		}
	}
	return clipped
}
