package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/admission"
	"github.com/m04kA/SMC-WalkBookingService/pkg/ptr"
	"github.com/m04kA/SMC-WalkBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования (разового, серии или передержки)
type UseCase struct {
	schedule     domain.Schedule
	bookingRepo  BookingRepository
	admitter     Admitter
	txManager    TransactionManager
	seriesIDs    SeriesIDGenerator
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
		seriesIDs:    UUIDGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithSeriesIDGenerator подменяет генератор series_id
func (uc *UseCase) WithSeriesIDGenerator(g SeriesIDGenerator) *UseCase {
	uc.seriesIDs = g
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка допуска и вставка всех визитов идут в одной сериализуемой транзакции:
// либо создаются все визиты серии, либо ни одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%d, service=%s, type=%s, date=%s, time=%s-%s, admin=%t",
		req.OwnerID, req.ServiceType, req.BookingType, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.Admin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Раскладываем запрос на визиты
	occurrences, err := uc.buildOccurrences(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to build occurrences: %v", err)
		return nil, err
	}

	// 3. Дата и рабочие часы каждого визита
	for _, occ := range occurrences {
		if err := validateDate(uc.schedule, occ.date, now, req.Admin); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return nil, err
		}
		if req.Admin || req.BookingType == domain.BookingMultiDay {
			continue
		}
		if err := validateWorkingHours(uc.schedule, occ, now); err != nil {
			uc.logger.Warn("CreateBooking: working hours validation failed: %v", err)
			return nil, err
		}
	}

	var seriesID *string
	if len(occurrences) > 1 {
		seriesID = ptr.Ptr(uc.seriesIDs.NewSeriesID())
	}

	created := make([]*domain.Booking, 0, len(occurrences))

	// 4. Допуск и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, occ := range occurrences {
			if err := uc.admit(txCtx, req, occ); err != nil {
				return err
			}

			booking := uc.newBooking(req, occ)
			if seriesID != nil {
				booking.SeriesID = seriesID
				booking.SeriesIndex = ptr.Ptr(occ.index)
			}

			saved, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create booking on %s: %v", occ.date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}
			created = append(created, saved)
		}

		return nil
	})

	if errors.Is(err, txmanager.ErrSerializationFailure) {
		uc.logger.Warn("CreateBooking: concurrent booking on %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created %d booking(s), first id=%d", len(created), created[0].ID)

	return &Response{
		SeriesID: seriesID,
		Bookings: created,
	}, nil
}

// buildOccurrences раскладывает запрос на отдельные визиты
func (uc *UseCase) buildOccurrences(req *Request) ([]occurrence, error) {
	loc := uc.schedule.Location
	date := uc.schedule.LocalDate(req.Date)

	if req.BookingType == domain.BookingMultiDay {
		endDate := uc.schedule.LocalDate(*req.EndDate)
		start, end := uc.sittingBounds(req, date, endDate)
		return []occurrence{{date: date, rng: domain.TimeRange{Start: start, End: end}}}, nil
	}

	first := domain.TimeRange{
		Start: req.StartTime.On(date, loc),
		End:   req.EndTime.On(date, loc),
	}

	if req.Recurrence == nil || *req.Recurrence == "" {
		return []occurrence{{date: date, rng: first}}, nil
	}

	starts, err := expandRecurrence(*req.Recurrence, first.Start, loc)
	if err != nil {
		return nil, err
	}

	duration := first.Duration()
	occurrences := make([]occurrence, len(starts))
	for i, start := range starts {
		occurrences[i] = occurrence{
			date:  uc.schedule.LocalDate(start),
			rng:   domain.TimeRange{Start: start, End: start.Add(duration)},
			index: i,
		}
	}

	return occurrences, nil
}

// sittingBounds время начала и конца передержки; без указанного времени - границы рабочего дня
func (uc *UseCase) sittingBounds(req *Request, date, endDate time.Time) (time.Time, time.Time) {
	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = uc.schedule.WorkdayStart
	}
	endTime := req.EndTime
	if endTime.IsZero() {
		endTime = uc.schedule.WorkdayEnd
	}
	return startTime.On(date, uc.schedule.Location), endTime.On(endDate, uc.schedule.Location)
}

// admit запускает контроллер допуска и переводит отказ в ошибку use case
func (uc *UseCase) admit(ctx context.Context, req *Request, occ occurrence) error {
	admissionReq := admission.AdmissionRequest{
		Date:           occ.date,
		EndDate:        occ.date,
		Range:          occ.rng,
		ServiceType:    req.ServiceType,
		BookingType:    req.BookingType,
		EnforceWalkCap: !req.Admin,
	}
	if req.BookingType == domain.BookingMultiDay {
		admissionReq.EndDate = uc.schedule.LocalDate(*req.EndDate)
	}

	decision, err := uc.admitter.Admit(ctx, admissionReq)
	if err != nil {
		uc.logger.Error("CreateBooking: admission check failed for %s: %v", occ.date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: admission check failed: %w", ErrInternal, err)
	}

	if decision.Admitted {
		return nil
	}

	uc.logger.Warn("CreateBooking: rejected on %s, reason=%s", occ.date.Format(domain.DateFormat), decision.Reason)
	return rejectionError(decision.Reason, occ)
}

func (uc *UseCase) newBooking(req *Request, occ occurrence) *domain.Booking {
	endDate := occ.date
	if req.BookingType == domain.BookingMultiDay {
		endDate = uc.schedule.LocalDate(*req.EndDate)
	}

	return &domain.Booking{
		OwnerID:     req.OwnerID,
		DogName:     req.DogName,
		ServiceType: req.ServiceType,
		BookingType: req.BookingType,
		Status:      domain.StatusConfirmed,
		Date:        occ.date,
		EndDate:     endDate,
		Start:       occ.rng.Start,
		End:         occ.rng.End,
		Notes:       req.Notes,
	}
}

func rejectionError(reason domain.CapacityReason, occ occurrence) error {
	date := occ.date.Format(domain.DateFormat)
	switch reason {
	case domain.ReasonWalkLimitReached:
		return fmt.Errorf("%w: %s", ErrWalkLimitReached, date)
	case domain.ReasonSittingOverlap:
		return fmt.Errorf("%w: %s", ErrSittingOverlap, date)
	default:
		return fmt.Errorf("%w: %s %s-%s", ErrSlotTaken, date,
			occ.rng.Start.Format(domain.TimeFormat), occ.rng.End.Format(domain.TimeFormat))
	}
}
