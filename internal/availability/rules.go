package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ConfirmedReservationRule запрещает окно, если с ним строго пересекается
// строка подтверждённого бронирования. Касание границ конфликтом не
// считается: [09:00,10:00) и [10:00,11:00) совместимы.
type ConfirmedReservationRule struct {
	store  ReservationStore
	logger Logger
}

// NewConfirmedReservationRule создает правило проверки по подтверждённым бронированиям
func NewConfirmedReservationRule(store ReservationStore, logger Logger) *ConfirmedReservationRule {
	return &ConfirmedReservationRule{store: store, logger: logger}
}

// Name возвращает имя правила для логов
func (r *ConfirmedReservationRule) Name() string {
	return "confirmed_reservation"
}

// IsAvailable возвращает true, если окно свободно от подтверждённых бронирований.
// При ошибке доступа к данным окно считается занятым (fail-closed), ошибка
// логируется и не поднимается выше.
func (r *ConfirmedReservationRule) IsAvailable(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) bool {
	overlaps, err := r.store.FindConfirmedOverlaps(ctx, courtID, date, start, end)
	if err != nil {
		r.logger.Error("availability[%s]: store error, treating slot as unavailable: court=%d, date=%s, window=%s-%s: %v",
			r.Name(), courtID, date.Format(domain.DateFormat), start, end, err)
		return false
	}

	return len(overlaps) == 0
}

// SpecialBlockRule запрещает окно, если с ним пересекается спецрасписание
// со статусом blocked или maintenance (независимо от цены).
type SpecialBlockRule struct {
	store  OverrideStore
	logger Logger
}

// NewSpecialBlockRule создает правило проверки по блокировкам спецрасписания
func NewSpecialBlockRule(store OverrideStore, logger Logger) *SpecialBlockRule {
	return &SpecialBlockRule{store: store, logger: logger}
}

// Name возвращает имя правила для логов
func (r *SpecialBlockRule) Name() string {
	return "special_block"
}

// IsAvailable возвращает true, если окно не перекрыто блокирующим
// спецрасписанием. При ошибке доступа к данным окно считается занятым
// (fail-closed), ошибка логируется.
func (r *SpecialBlockRule) IsAvailable(ctx context.Context, courtID int64, date time.Time, start, end types.TimeString) bool {
	overrides, err := r.store.OverridesByDate(ctx, courtID, date)
	if err != nil {
		r.logger.Error("availability[%s]: store error, treating slot as unavailable: court=%d, date=%s, window=%s-%s: %v",
			r.Name(), courtID, date.Format(domain.DateFormat), start, end, err)
		return false
	}

	for _, o := range overrides {
		if o.IsBlocking() && o.Overlaps(start, end) {
			return false
		}
	}

	return true
}
