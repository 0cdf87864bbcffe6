package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Владелец может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает историю бронирований владельца.
// Опционально фильтрует по статусу
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%d, status=%v", req.OwnerID, req.Status)

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid status=%s for owner=%d", *req.Status, req.OwnerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByOwner(ctx, req.OwnerID, status)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// ListByDate все бронирования, затрагивающие дату, включая передержки (админка)
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: fetching bookings for date=%s, status=%v", req.Date.Format(domain.DateFormat), req.Status)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListByDate: invalid status=%s", *req.Status)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, req.Date, status)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d bookings for date=%s", len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Владелец отменяет только своё, админ - любое.
// Отменённое бронирование сразу перестаёт занимать время и лимит прогулок
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d, admin=%t", bookingID, req.UserID, req.Admin)

	if err := validateReason(req.CancellationReason); err != nil {
		return err
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !req.Admin && booking.OwnerID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.cancel(txCtx, "Cancel", bookingID, req.CancellationReason); err != nil {
			return err
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
}

// CancelSeries отменяет все ещё подтверждённые визиты серии.
// Возвращает количество отменённых визитов
func (s *Service) CancelSeries(ctx context.Context, seriesID string, req *models.CancelBookingRequest) (int, error) {
	s.logger.Info("CancelSeries: cancelling series=%s by user=%d, admin=%t", seriesID, req.UserID, req.Admin)

	if err := validateReason(req.CancellationReason); err != nil {
		return 0, err
	}

	cancelled := 0
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		series, err := s.bookingRepo.ListBySeries(txCtx, seriesID)
		if err != nil {
			s.logger.Error("CancelSeries: repository error for series=%s: %v", seriesID, err)
			return fmt.Errorf("%w: CancelSeries - repository error: %v", ErrInternal, err)
		}
		if len(series) == 0 {
			s.logger.Warn("CancelSeries: series=%s not found", seriesID)
			return ErrSeriesNotFound
		}

		for _, b := range series {
			if !req.Admin && b.OwnerID != req.UserID {
				s.logger.Warn("CancelSeries: access denied for user=%d to series=%s", req.UserID, seriesID)
				return ErrAccessDenied
			}
		}

		for _, b := range series {
			if !b.CanBeCancelled() {
				continue
			}
			if err := s.cancel(txCtx, "CancelSeries", b.ID, req.CancellationReason); err != nil {
				return err
			}
			cancelled++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("CancelSeries: cancelled %d booking(s) of series=%s", cancelled, seriesID)
	return cancelled, nil
}

// UpdateStatus переводит бронирование по жизненному циклу:
// confirmed -> completed -> completed&paid, confirmed -> cancelled (админка)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", bookingID, booking.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if newStatus == domain.StatusCancelled {
			return s.cancel(txCtx, "UpdateStatus", bookingID, nil)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) cancel(ctx context.Context, op string, id int64, reason *string) error {
	if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during cancellation", op, id)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := models.ToDomainBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}

func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
