package get_slot_grid

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// snapshot хранит все данные корта на дату, прочитанные одним батчем.
// Правила доступности и ценообразования работают поверх снимка, поэтому
// построение сетки не порождает по запросу в БД на каждый слот.
type snapshot struct {
	windows    []*domain.WeeklySchedule
	overrides  []*domain.DateOverride
	details    []*domain.ReservationDetail
	surcharges map[int64]float64 // scheduleID -> сумма обязательных наценок
}

// loadSnapshot читает окна расписания, спецрасписания и подтверждённые
// бронирования корта на дату за фиксированное число запросов
func loadSnapshot(
	ctx context.Context,
	courtID int64,
	date time.Time,
	schedules ScheduleRepository,
	reservations ReservationRepository,
	services ServiceRepository,
) (*snapshot, error) {
	windows, err := schedules.WeeklyWindows(ctx, courtID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load weekly windows: %v", ErrInternal, err)
	}

	overrides, err := schedules.OverridesByDate(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load date overrides: %v", ErrInternal, err)
	}

	details, err := reservations.GetConfirmedDetailsByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load confirmed reservations: %v", ErrInternal, err)
	}

	surcharges := make(map[int64]float64, len(windows))
	for _, w := range windows {
		sum, err := services.MandatorySurchargeSum(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load mandatory surcharges: %v", ErrInternal, err)
		}
		surcharges[w.ID] = sum
	}

	return &snapshot{
		windows:    windows,
		overrides:  overrides,
		details:    details,
		surcharges: surcharges,
	}, nil
}

// FindConfirmedOverlaps реализует availability.ReservationStore поверх снимка
func (s *snapshot) FindConfirmedOverlaps(_ context.Context, _ int64, _ time.Time, start, end types.TimeString) ([]*domain.ReservationDetail, error) {
	var overlapping []*domain.ReservationDetail
	for _, d := range s.details {
		if d.Overlaps(start, end) {
			overlapping = append(overlapping, d)
		}
	}
	return overlapping, nil
}

// OverridesByDate реализует availability.OverrideStore и pricing.OverrideStore
func (s *snapshot) OverridesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateOverride, error) {
	return s.overrides, nil
}

// WeeklyWindows реализует pricing.ScheduleStore поверх снимка
func (s *snapshot) WeeklyWindows(_ context.Context, _ int64, _ time.Weekday) ([]*domain.WeeklySchedule, error) {
	return s.windows, nil
}

// MandatorySurchargeSum реализует pricing.ServiceStore поверх снимка
func (s *snapshot) MandatorySurchargeSum(_ context.Context, scheduleID int64) (float64, error) {
	return s.surcharges[scheduleID], nil
}
