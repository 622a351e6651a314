package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/salabelleza/SPA-BookingService/internal/infra/storage/schedule"
	"github.com/salabelleza/SPA-BookingService/internal/service/schedule/models"
)

// Service owns the schedule configuration: lazy default creation, cached
// reads and validated partial updates.
type Service struct {
	repo   ScheduleRepository
	cache  ScheduleCache // nil when the cache is disabled
	logger Logger
}

// NewService creates a schedule configuration service. cache may be nil.
func NewService(repo ScheduleRepository, cache ScheduleCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the current configuration. When none has ever been
// persisted, the documented default is written first, so the first read
// is durable and repeated reads are idempotent.
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	if s.cache != nil {
		if cfg, ok := s.cache.Get(ctx); ok {
			return models.FromDomainConfig(cfg), nil
		}
	}

	cfg, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cfg)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update applies a typed partial update: provided fields replace the
// stored value wholesale, omitted fields keep their current value. The
// merged result is persisted as a whole and the cache invalidated.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: template=%v exceptions=%v maxDaily=%v maxGuests=%v conflicts=%v",
		req.WeeklyTemplate != nil, req.Exceptions != nil,
		req.MaxDailyBookings != nil, req.MaxGuestsPerBooking != nil, req.PreventTimeConflicts != nil)

	if err := validateRequest(req); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	current, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.WeeklyTemplate != nil {
		current.WeeklyTemplate = models.ToDomainTemplate(*req.WeeklyTemplate)
	}
	if req.Exceptions != nil {
		current.Exceptions = models.ToDomainExceptions(*req.Exceptions)
	}
	if req.MaxDailyBookings != nil {
		current.MaxDailyBookings = *req.MaxDailyBookings
	}
	if req.MaxGuestsPerBooking != nil {
		current.MaxGuestsPerBooking = *req.MaxGuestsPerBooking
	}
	if req.PreventTimeConflicts != nil {
		current.PreventTimeConflicts = *req.PreventTimeConflicts
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("UpdateSchedule: configuration updated, maxDaily=%d maxGuests=%d",
		updated.MaxDailyBookings, updated.MaxGuestsPerBooking)
	return models.FromDomainConfig(updated), nil
}

func (s *Service) loadOrCreate(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("Schedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Schedule: no configuration persisted, writing defaults")
	if err := s.repo.CreateDefault(ctx); err != nil {
		s.logger.Error("Schedule: failed to persist defaults: %v", err)
		return nil, fmt.Errorf("%w: CreateDefault - repository error: %v", ErrInternal, err)
	}

	cfg, err = s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Schedule: re-read after default creation failed: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return cfg, nil
}
