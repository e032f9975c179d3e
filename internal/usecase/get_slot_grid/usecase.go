package get_slot_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
)

// UseCase use case построения сетки слотов корта на дату
type UseCase struct {
	courtRepo       CourtRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courtRepo CourtRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		courtRepo:       courtRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case построения сетки слотов.
// Все данные корта на дату читаются одним батчем, правила доступности и
// ценообразования работают поверх снимка в памяти.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotGrid: court=%d, date=%s, mode=%s",
		req.CourtID, req.Date.Format(domain.DateFormat), req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем корт
	c, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrCourtNotFound) {
			uc.logger.Warn("GetSlotGrid: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetSlotGrid: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !c.IsActive() {
		uc.logger.Warn("GetSlotGrid: court id=%d is inactive", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 3. Читаем снимок данных корта на дату
	snap, err := loadSnapshot(ctx, req.CourtID, req.Date, uc.scheduleRepo, uc.reservationRepo, uc.serviceRepo)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to load snapshot: %v", err)
		return nil, err
	}

	// 4. Строим сетку в запрошенном режиме
	var slots []*domain.GridSlot
	switch req.Mode {
	case ModeFullDay:
		slots, err = buildFullDayGrid(snap)
	default:
		agg := availability.NewAggregator(uc.logger,
			availability.NewConfirmedReservationRule(snap, uc.logger),
			availability.NewSpecialBlockRule(snap, uc.logger),
		)
		resolver := pricing.NewDefaultResolver(snap, snap, snap, uc.logger)
		slots, err = buildScheduleGrid(ctx, req.CourtID, req.Date, snap, agg, resolver, uc.logger)
	}
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to build grid: %v", err)
		return nil, err
	}

	uc.logger.Info("GetSlotGrid: built %d slots for court=%d, date=%s",
		len(slots), req.CourtID, req.Date.Format(domain.DateFormat))

	return &Response{
		CourtID: req.CourtID,
		Date:    req.Date,
		Mode:    req.Mode,
		Slots:   slots,
	}, nil
}
