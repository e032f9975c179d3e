package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// SpecialDateRule цена из спецрасписания на дату: применимо, если
// существует спецрасписание со статусом available, полностью покрывающее
// запрошенное окно, с заданной ценой.
//
// Если окно покрывают несколько спецрасписаний, побеждает самое узкое
// покрывающее окно; при равенстве — созданное последним (больший id).
// Правило детерминированно и не зависит от порядка строк в БД.
type SpecialDateRule struct {
	store  OverrideStore
	logger Logger
}

// NewSpecialDateRule создает правило ценообразования по спецрасписанию
func NewSpecialDateRule(store OverrideStore, logger Logger) *SpecialDateRule {
	return &SpecialDateRule{store: store, logger: logger}
}

// Name возвращает имя правила для логов
func (r *SpecialDateRule) Name() string {
	return "special_date"
}

// Price возвращает цену покрывающего спецрасписания или ok=false
func (r *SpecialDateRule) Price(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) (float64, bool, error) {
	overrides, err := r.store.OverridesByDate(ctx, courtID, date)
	if err != nil {
		return 0, false, fmt.Errorf("%w: special_date - fetch overrides: %v", ErrInternal, err)
	}

	var best *domain.DateOverride
	for _, o := range overrides {
		if o.Status != domain.OverrideAvailable || o.Price == nil {
			continue
		}
		if !o.Covers(start, end) {
			continue
		}
		if best == nil || narrower(o, best) {
			best = o
		}
	}

	if best == nil {
		return 0, false, nil
	}

	return *best.Price, true, nil
}

// narrower возвращает true, если кандидат покрывает окно уже текущего
// победителя (или при равной ширине создан позже)
func narrower(candidate, current *domain.DateOverride) bool {
	cw := candidate.EndTime.Minutes() - candidate.StartTime.Minutes()
	bw := current.EndTime.Minutes() - current.StartTime.Minutes()
	if cw != bw {
		return cw < bw
	}
	return candidate.ID > current.ID
}
