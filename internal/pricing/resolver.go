package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Resolver перебирает правила ценообразования в порядке приоритета и
// возвращает первую применимую цену. Спецрасписание на дату всегда
// побеждает базовое недельное расписание — правило на конкретную дату
// приоритетнее повторяющегося.
type Resolver struct {
	rules  []Rule
	logger Logger
}

// NewResolver создает резолвер над упорядоченным набором правил
func NewResolver(logger Logger, rules ...Rule) *Resolver {
	return &Resolver{rules: rules, logger: logger}
}

// NewDefaultResolver создает резолвер со стандартным порядком правил:
// спецрасписание, затем базовое расписание
func NewDefaultResolver(overrides OverrideStore, schedules ScheduleStore, services ServiceStore, logger Logger) *Resolver {
	return NewResolver(logger,
		NewSpecialDateRule(overrides, logger),
		NewBaseScheduleRule(schedules, services, logger),
	)
}

// ResolvePrice возвращает цену первого применимого правила.
// Если ни одно правило не применимо, возвращает ErrNotPriced.
func (r *Resolver) ResolvePrice(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) (float64, error) {
	for _, rule := range r.rules {
		price, ok, err := rule.Price(ctx, courtID, date, start, end)
		if err != nil {
			return 0, err
		}
		if ok && price >= 0 {
			return price, nil
		}
	}
	return 0, ErrNotPriced
}
