package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/admission"
	"github.com/m04kA/SMC-WalkBookingService/pkg/txmanager"
)

// UseCase use case для переноса разового бронирования на другое время
type UseCase struct {
	schedule     domain.Schedule
	bookingRepo  BookingRepository
	admitter     Admitter
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule domain.Schedule,
	bookingRepo BookingRepository,
	admitter Admitter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:     schedule,
		bookingRepo:  bookingRepo,
		admitter:     admitter,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование. Допуск проверяется без учёта самого переносимого
// бронирования, поэтому сдвиг внутри собственного интервала разрешён
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: id=%d, owner=%d, date=%s, time=%s-%s, admin=%t",
		req.BookingID, req.OwnerID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Admin)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	date := uc.schedule.LocalDate(req.Date)
	rng := domain.TimeRange{
		Start: req.StartTime.On(date, uc.schedule.Location),
		End:   req.EndTime.On(date, uc.schedule.Location),
	}

	if err := validateSchedule(uc.schedule, date, rng, uc.timeProvider.Now(), req.Admin); err != nil {
		uc.logger.Warn("RescheduleBooking: schedule validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}

		decision, err := uc.admitter.Admit(txCtx, admission.AdmissionRequest{
			Date:             date,
			EndDate:          date,
			Range:            rng,
			ServiceType:      booking.ServiceType,
			BookingType:      booking.BookingType,
			ExcludeBookingID: &booking.ID,
			EnforceWalkCap:   !req.Admin,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: admission check failed for id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: admission check failed: %w", ErrInternal, err)
		}
		if !decision.Admitted {
			uc.logger.Warn("RescheduleBooking: id=%d rejected, reason=%s", booking.ID, decision.Reason)
			if decision.Reason == domain.ReasonWalkLimitReached {
				return fmt.Errorf("%w: %s", ErrWalkLimitReached, date.Format(domain.DateFormat))
			}
			return fmt.Errorf("%w: %s %s-%s", ErrSlotTaken, date.Format(domain.DateFormat),
				rng.Start.Format(domain.TimeFormat), rng.End.Format(domain.TimeFormat))
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, date, rng.Start, rng.End); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		booking.Date = date
		booking.EndDate = date
		booking.Start = rng.Start
		booking.End = rng.End
		updated = booking
		return nil
	})

	if errors.Is(err, txmanager.ErrSerializationFailure) {
		uc.logger.Warn("RescheduleBooking: concurrent booking for id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: id=%d moved to %s %s-%s", updated.ID,
		date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	return &Response{Booking: updated}, nil
}

// load читает бронирование под блокировкой и проверяет, что его можно переносить
func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: repository error for id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: get booking: %w", ErrInternal, err)
	}

	if !req.Admin && booking.OwnerID != req.OwnerID {
		uc.logger.Warn("RescheduleBooking: owner=%d has no access to id=%d", req.OwnerID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: id=%d cannot be rescheduled, status=%s, type=%s",
			booking.ID, booking.Status, booking.BookingType)
		return nil, ErrCannotReschedule
	}

	return booking, nil
}
