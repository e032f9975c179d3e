package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BaseScheduleRule цена из базового недельного расписания: ищет окно,
// полностью покрывающее запрошенный интервал на день недели даты,
// и прибавляет к базовой цене сумму наценок обязательных активных услуг.
//
// Отсутствие покрывающего окна — ошибка конфигурации (ErrNoBaseSchedule),
// а не "неприменимо": базовое правило — последний рубеж резолвера.
type BaseScheduleRule struct {
	schedules ScheduleStore
	services  ServiceStore
	logger    Logger
}

// NewBaseScheduleRule создает правило ценообразования по базовому расписанию
func NewBaseScheduleRule(schedules ScheduleStore, services ServiceStore, logger Logger) *BaseScheduleRule {
	return &BaseScheduleRule{schedules: schedules, services: services, logger: logger}
}

// Name возвращает имя правила для логов
func (r *BaseScheduleRule) Name() string {
	return "base_schedule"
}

// Price возвращает базовую цену покрывающего окна плюс обязательные наценки
func (r *BaseScheduleRule) Price(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) (float64, bool, error) {
	windows, err := r.schedules.WeeklyWindows(ctx, courtID, date.Weekday())
	if err != nil {
		return 0, false, fmt.Errorf("%w: base_schedule - fetch weekly windows: %v", ErrInternal, err)
	}

	var covering *domain.WeeklySchedule
	for _, w := range windows {
		if w.Covers(start, end) {
			covering = w
			break
		}
	}

	if covering == nil {
		return 0, false, fmt.Errorf("%w: court=%d, weekday=%s, window=%s-%s",
			ErrNoBaseSchedule, courtID, date.Weekday(), start, end)
	}

	surcharge, err := r.services.MandatorySurchargeSum(ctx, covering.ID)
	if err != nil {
		return 0, false, fmt.Errorf("%w: base_schedule - fetch mandatory surcharges: %v", ErrInternal, err)
	}

	return covering.BasePrice + surcharge, true, nil
}
