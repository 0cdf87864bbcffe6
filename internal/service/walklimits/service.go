package walklimits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	walkLimitRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/walklimit"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits/models"
)

// maxListDays ограничение периода в List
const maxListDays = 366

// Service сервис переопределений лимита прогулок (админка)
type Service struct {
	repo           WalkLimitRepository
	defaultWalkCap int
	logger         Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo WalkLimitRepository, defaultWalkCap int, logger Logger) *Service {
	return &Service{
		repo:           repo,
		defaultWalkCap: defaultWalkCap,
		logger:         logger,
	}
}

// Get возвращает переопределение на дату. Отсутствие строки не ошибка:
// в ответе Exists=false и действует лимит по умолчанию
func (s *Service) Get(ctx context.Context, date time.Time) (*models.WalkLimitResponse, error) {
	s.logger.Info("Get: fetching walk limit for date=%s", date.Format(domain.DateFormat))

	override, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, walkLimitRepo.ErrOverrideNotFound) {
			return models.DefaultResponse(date, s.defaultWalkCap), nil
		}
		s.logger.Error("Get: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverride(override, s.defaultWalkCap), nil
}

// List переопределения за период [from, to]
func (s *Service) List(ctx context.Context, from, to time.Time) (*models.WalkLimitListResponse, error) {
	s.logger.Info("List: fetching walk limits %s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' must not precede 'from'", ErrInvalidInput)
	}
	if to.Sub(from) > maxListDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period must be at most %d days", ErrInvalidInput, maxListDays)
	}

	overrides, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.WalkLimitListResponse{Overrides: make([]models.WalkLimitResponse, 0, len(overrides))}
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, *models.FromDomainOverride(o, s.defaultWalkCap))
	}
	return resp, nil
}

// Upsert устанавливает лимит на дату; MaxWalks == nil снимает лимит
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRequest) (*models.WalkLimitResponse, error) {
	s.logger.Info("Upsert: setting walk limit for date=%s, maxWalks=%v", req.Date.Format(domain.DateFormat), req.MaxWalks)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MaxWalks != nil && (*req.MaxWalks < 0 || *req.MaxWalks > domain.MaxWalkCap) {
		s.logger.Warn("Upsert: invalid maxWalks=%d", *req.MaxWalks)
		return nil, fmt.Errorf("%w: maxWalks must be between 0 and %d", ErrInvalidInput, domain.MaxWalkCap)
	}

	saved, err := s.repo.Upsert(ctx, &domain.WalkLimitOverride{
		Date:     domain.DateOnly(req.Date),
		MaxWalks: req.MaxWalks,
	})
	if err != nil {
		s.logger.Error("Upsert: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: walk limit for date=%s saved", req.Date.Format(domain.DateFormat))
	return models.FromDomainOverride(saved, s.defaultWalkCap), nil
}

// Delete удаляет переопределение, после чего на дату снова действует лимит по умолчанию
func (s *Service) Delete(ctx context.Context, date time.Time) error {
	s.logger.Info("Delete: removing walk limit for date=%s", date.Format(domain.DateFormat))

	if err := s.repo.Delete(ctx, date); err != nil {
		if errors.Is(err, walkLimitRepo.ErrOverrideNotFound) {
			s.logger.Warn("Delete: no override for date=%s", date.Format(domain.DateFormat))
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}
