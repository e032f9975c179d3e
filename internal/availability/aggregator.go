package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Aggregator композиция правил доступности: окно доступно, только если
// ВСЕ зарегистрированные правила согласны. Вычисление прерывается на
// первом отрицательном ответе; правила — чистые предикаты над
// сохранённым состоянием, поэтому корректность от порядка не зависит.
type Aggregator struct {
	rules  []Rule
	logger Logger
}

// NewAggregator создает агрегатор над набором правил
func NewAggregator(logger Logger, rules ...Rule) *Aggregator {
	return &Aggregator{rules: rules, logger: logger}
}

// IsAvailable возвращает логическое И по всем правилам
func (a *Aggregator) IsAvailable(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) bool {
	for _, rule := range a.rules {
		if !rule.IsAvailable(ctx, courtID, date, start, end) {
			return false
		}
	}
	return true
}
