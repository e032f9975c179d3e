package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	scheduleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Service сервис управления расписаниями кортов
type Service struct {
	scheduleRepo ScheduleRepository
	courtRepo    CourtRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	courtRepo CourtRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		courtRepo:    courtRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetCourtSchedule получает недельное расписание корта
func (s *Service) GetCourtSchedule(ctx context.Context, courtID int64) (*models.CourtScheduleResponse, error) {
	s.logger.Info("GetCourtSchedule: fetching schedule for court=%d", courtID)

	if err := s.checkCourtExists(ctx, courtID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.WeeklyScheduleByCourt(ctx, courtID)
	if err != nil {
		s.logger.Error("GetCourtSchedule: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtSchedule - repository error: %v", ErrInternal, err)
	}

	services, err := s.loadWindowServices(ctx, windows)
	if err != nil {
		s.logger.Error("GetCourtSchedule: failed to load window services for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtSchedule: successfully fetched %d windows for court=%d", len(windows), courtID)
	return models.FromDomainWeeklySchedule(courtID, windows, services), nil
}

// ReplaceWeeklySchedule полностью заменяет недельное расписание корта.
// Удаление старых окон и вставка новых выполняются в одной транзакции.
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, req *models.ReplaceWeeklyScheduleRequest) (*models.CourtScheduleResponse, error) {
	s.logger.Info("ReplaceWeeklySchedule: replacing schedule for court=%d with %d windows",
		req.CourtID, len(req.Windows))

	if err := s.checkCourtExists(ctx, req.CourtID); err != nil {
		return nil, err
	}

	windows, err := s.convertAndValidateWindows(req.CourtID, req.Windows)
	if err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: validation failed for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeeklySchedule(txCtx, req.CourtID, windows)
	})
	if err != nil {
		s.logger.Error("ReplaceWeeklySchedule: failed to replace schedule for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: ReplaceWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	stored, err := s.scheduleRepo.WeeklyScheduleByCourt(ctx, req.CourtID)
	if err != nil {
		s.logger.Error("ReplaceWeeklySchedule: failed to re-read schedule for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: ReplaceWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeeklySchedule: successfully replaced schedule for court=%d", req.CourtID)
	// Новые окна ещё не имеют услуг, но контракт ответа единый с GetCourtSchedule
	return models.FromDomainWeeklySchedule(req.CourtID, stored, nil), nil
}

// loadWindowServices загружает услуги всех окон, сгруппированные по schedule_id
func (s *Service) loadWindowServices(ctx context.Context, windows []*domain.WeeklySchedule) (map[int64][]*domain.ScheduleService, error) {
	services := make(map[int64][]*domain.ScheduleService, len(windows))
	for _, w := range windows {
		list, err := s.serviceRepo.ListBySchedule(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			services[w.ID] = list
		}
	}
	return services, nil
}

// GetOverrides получает спецрасписания корта на дату
func (s *Service) GetOverrides(ctx context.Context, courtID int64, date time.Time) ([]*models.OverrideResponse, error) {
	s.logger.Info("GetOverrides: fetching overrides for court=%d, date=%s",
		courtID, date.Format(domain.DateFormat))

	if err := s.checkCourtExists(ctx, courtID); err != nil {
		return nil, err
	}

	overrides, err := s.scheduleRepo.OverridesByDate(ctx, courtID, date)
	if err != nil {
		s.logger.Error("GetOverrides: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetOverrides - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp = append(resp, models.FromDomainOverride(o))
	}
	return resp, nil
}

// CreateOverride создает спецрасписание на дату
func (s *Service) CreateOverride(ctx context.Context, req *models.CreateOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: creating override for court=%d, date=%s, window=%s-%s, status=%s",
		req.CourtID, req.Date, req.StartTime, req.EndTime, req.Status)

	if err := s.checkCourtExists(ctx, req.CourtID); err != nil {
		return nil, err
	}

	override, err := s.convertAndValidateOverride(req)
	if err != nil {
		s.logger.Warn("CreateOverride: validation failed for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateOverride(ctx, override)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateOverride) {
			s.logger.Warn("CreateOverride: duplicate override for court=%d, date=%s", req.CourtID, req.Date)
			return nil, ErrDuplicateOverride
		}
		s.logger.Error("CreateOverride: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: successfully created override id=%d for court=%d", created.ID, req.CourtID)
	return models.FromDomainOverride(created), nil
}

// checkCourtExists проверяет существование корта
func (s *Service) checkCourtExists(ctx context.Context, courtID int64) error {
	if courtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("court id=%d not found", courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("failed to get court id=%d: %v", courtID, err)
		return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	return nil
}

// convertAndValidateWindows конвертирует и валидирует окна недельного расписания:
// корректные времена, start < end, без пересечений внутри дня недели
func (s *Service) convertAndValidateWindows(courtID int64, payloads []models.WeeklyWindowPayload) ([]*domain.WeeklySchedule, error) {
	windows := make([]*domain.WeeklySchedule, 0, len(payloads))
	perDay := make(map[time.Weekday]int)

	for i, p := range payloads {
		if p.Weekday < 0 || p.Weekday > 6 {
			return nil, fmt.Errorf("%w: window %d: weekday must be in range 0-6", ErrInvalidInput, i)
		}
		if p.BasePrice < 0 {
			return nil, fmt.Errorf("%w: window %d: basePrice must not be negative", ErrInvalidInput, i)
		}

		w, err := p.ToDomainWindow(courtID)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidInput, i, err)
		}
		if !w.StartTime.IsBefore(w.EndTime) {
			return nil, fmt.Errorf("%w: window %d: start time must be before end time", ErrInvalidInput, i)
		}

		perDay[w.Weekday]++
		if perDay[w.Weekday] > domain.MaxScheduleWindowsPerDay {
			return nil, fmt.Errorf("%w: too many windows for weekday %s (max %d)",
				ErrInvalidInput, w.Weekday, domain.MaxScheduleWindowsPerDay)
		}

		windows = append(windows, w)
	}

	// Проверяем пересечения окон внутри каждого дня недели
	sorted := make([]*domain.WeeklySchedule, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}
		return sorted[i].StartTime.Minutes() < sorted[j].StartTime.Minutes()
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Weekday == cur.Weekday && cur.StartTime.IsBefore(prev.EndTime) {
			return nil, fmt.Errorf("%w: windows %s-%s and %s-%s overlap on %s",
				ErrInvalidInput, prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime, cur.Weekday)
		}
	}

	return windows, nil
}

// convertAndValidateOverride конвертирует и валидирует спецрасписание
func (s *Service) convertAndValidateOverride(req *models.CreateOverrideRequest) (*domain.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	status := domain.OverrideStatus(req.Status)
	switch status {
	case domain.OverrideAvailable, domain.OverrideBlocked, domain.OverrideMaintenance:
	default:
		return nil, fmt.Errorf("%w: unknown override status %q", ErrInvalidInput, req.Status)
	}

	if status == domain.OverrideAvailable && req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return &domain.DateOverride{
		CourtID:   req.CourtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Price:     req.Price,
		Status:    status,
	}, nil
}
