package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	walkLimitRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/walklimit"
)

// Controller решает, можно ли принять бронирование: нет ли прямого наложения
// и не превышен ли лимит прогулок на день активной передержки.
// Собственного состояния не хранит - всё читается заново на каждый запрос,
// поэтому вызывать его нужно внутри той же сериализуемой транзакции, что и вставку
type Controller struct {
	cfg           Config
	bookingRepo   BookingRepository
	walkLimitRepo WalkLimitRepository
	recorder      DecisionRecorder
	logger        Logger
}

// NewController создает контроллер допуска. recorder может быть nil
func NewController(
	cfg Config,
	bookingRepo BookingRepository,
	walkLimitRepo WalkLimitRepository,
	recorder DecisionRecorder,
	logger Logger,
) *Controller {
	return &Controller{
		cfg:           cfg,
		bookingRepo:   bookingRepo,
		walkLimitRepo: walkLimitRepo,
		recorder:      recorder,
		logger:        logger,
	}
}

// ResolveWalkCap определяет состояние даты:
// нет активной передержки -> лимит не действует;
// есть передержка и override с NULL -> без лимита;
// есть передержка -> лимит из override или значение по умолчанию
func (c *Controller) ResolveWalkCap(ctx context.Context, date time.Time) (*WalkCapResolution, error) {
	sittings, err := c.bookingRepo.ListActiveSittings(ctx, date)
	if err != nil {
		c.logger.Error("ResolveWalkCap: failed to list active sittings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list active sittings: %w", ErrLookupFailed, err)
	}

	if len(sittings) == 0 {
		return &WalkCapResolution{State: domain.WalkCapInactive}, nil
	}

	override, err := c.walkLimitRepo.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, walkLimitRepo.ErrOverrideNotFound) {
		c.logger.Error("ResolveWalkCap: failed to get walk limit override for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: get walk limit override: %w", ErrLookupFailed, err)
	}

	if override == nil {
		return &WalkCapResolution{
			State:          domain.WalkCapEnforced,
			Cap:            c.cfg.DefaultWalkCap,
			ActiveSittings: len(sittings),
		}, nil
	}

	if override.IsUnlimited() {
		return &WalkCapResolution{
			State:          domain.WalkCapUnlimited,
			ActiveSittings: len(sittings),
			FromOverride:   true,
		}, nil
	}

	return &WalkCapResolution{
		State:          domain.WalkCapEnforced,
		Cap:            *override.MaxWalks,
		ActiveSittings: len(sittings),
		FromOverride:   true,
	}, nil
}

// CheckWalkCap проверяет только лимит прогулок
func (c *Controller) CheckWalkCap(ctx context.Context, req AdmissionRequest) (*domain.AdmissionDecision, error) {
	if !req.EnforceWalkCap || !req.ServiceType.IsCappedWalk() {
		return domain.Admit(), nil
	}

	resolution, err := c.ResolveWalkCap(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	if resolution.State != domain.WalkCapEnforced {
		return domain.Admit(), nil
	}

	count, err := c.bookingRepo.CountConfirmedWalks(ctx, req.Date, req.ExcludeBookingID)
	if err != nil {
		c.logger.Error("CheckWalkCap: failed to count walks for %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: count confirmed walks: %w", ErrLookupFailed, err)
	}

	if count >= resolution.Cap {
		c.logger.Warn("CheckWalkCap: walk limit reached for %s, %d/%d walks booked",
			req.Date.Format(domain.DateFormat), count, resolution.Cap)
		return domain.Reject(domain.ReasonWalkLimitReached), nil
	}

	c.logger.Info("CheckWalkCap: %s has %d/%d walks booked", req.Date.Format(domain.DateFormat), count, resolution.Cap)
	return domain.Admit(), nil
}

// CheckOverlap проверяет прямое наложение на подтверждённые разовые бронирования даты.
// Соприкосновение границ наложением не считается
func (c *Controller) CheckOverlap(ctx context.Context, req AdmissionRequest) (*domain.AdmissionDecision, error) {
	bookings, err := c.bookingRepo.ListConfirmedOnDate(ctx, req.Date)
	if err != nil {
		c.logger.Error("CheckOverlap: failed to list bookings for %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list confirmed bookings: %w", ErrLookupFailed, err)
	}

	for _, b := range bookings {
		if b.IsMultiDay() || !b.IsConfirmed() || isExcluded(b, req.ExcludeBookingID) {
			continue
		}
		if b.Range().Overlaps(req.Range) {
			c.logger.Warn("CheckOverlap: requested %s-%s overlaps booking id=%d",
				req.Range.Start.Format(domain.TimeFormat), req.Range.End.Format(domain.TimeFormat), b.ID)
			return domain.Reject(domain.ReasonSlotTaken), nil
		}
	}

	return domain.Admit(), nil
}

// CheckSittingOverlap не даёт взять две передержки одновременно (исполнитель один)
func (c *Controller) CheckSittingOverlap(ctx context.Context, req AdmissionRequest) (*domain.AdmissionDecision, error) {
	sittings, err := c.bookingRepo.ListSittingsOverlapping(ctx, req.Date, req.EndDate)
	if err != nil {
		c.logger.Error("CheckSittingOverlap: failed to list sittings %s..%s: %v",
			req.Date.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list overlapping sittings: %w", ErrLookupFailed, err)
	}

	for _, s := range sittings {
		if isExcluded(s, req.ExcludeBookingID) || !s.IsConfirmed() {
			continue
		}
		c.logger.Warn("CheckSittingOverlap: requested sitting overlaps sitting id=%d", s.ID)
		return domain.Reject(domain.ReasonSittingOverlap), nil
	}

	return domain.Admit(), nil
}

// Admit выполняет все применимые проверки и возвращает первый отказ.
// Ошибка чтения всегда возвращается как ошибка, а не как допуск
func (c *Controller) Admit(ctx context.Context, req AdmissionRequest) (*domain.AdmissionDecision, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var checks []func(context.Context, AdmissionRequest) (*domain.AdmissionDecision, error)
	if req.BookingType == domain.BookingMultiDay {
		checks = append(checks, c.CheckSittingOverlap)
	} else {
		checks = append(checks, c.CheckOverlap, c.CheckWalkCap)
	}

	for _, check := range checks {
		decision, err := check(ctx, req)
		if err != nil {
			return nil, err
		}
		if !decision.Admitted {
			c.record(decision)
			return decision, nil
		}
	}

	decision := domain.Admit()
	c.record(decision)
	return decision, nil
}

func (c *Controller) record(decision *domain.AdmissionDecision) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveAdmission(decision.Admitted, string(decision.Reason))
}

func validateRequest(req AdmissionRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if req.BookingType == domain.BookingMultiDay {
		if req.EndDate.IsZero() || domain.DateOnly(req.EndDate).Before(domain.DateOnly(req.Date)) {
			return fmt.Errorf("%w: sitting end date must not precede start date", ErrInvalidRequest)
		}
		return nil
	}
	if !req.Range.IsValid() {
		return fmt.Errorf("%w: time range must have start <= end", ErrInvalidRequest)
	}
	return nil
}

func isExcluded(b *domain.Booking, excludeID *int64) bool {
	return excludeID != nil && b.ID == *excludeID
}
