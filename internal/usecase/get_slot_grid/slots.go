package get_slot_grid

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// buildScheduleGrid строит сетку по окнам базового расписания: каждое окно
// нарезается часовыми шагами, последний слот укорачивается до конца окна.
// Ошибка ценообразования закрывает только свой слот, а не всю сетку.
func buildScheduleGrid(
	ctx context.Context,
	courtID int64,
	date time.Time,
	snap *snapshot,
	agg *availability.Aggregator,
	resolver *pricing.Resolver,
	logger Logger,
) ([]*domain.GridSlot, error) {
	var slots []*domain.GridSlot

	for _, window := range snap.windows {
		cur := window.StartTime.Minutes()
		windowEnd := window.EndTime.Minutes()

		for cur < windowEnd {
			slotEnd := cur + domain.SlotDurationMinutes
			if slotEnd > windowEnd {
				slotEnd = windowEnd
			}

			start, err := types.FromMinutes(cur)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to build slot start: %v", ErrInternal, err)
			}
			end, err := types.FromMinutes(slotEnd)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to build slot end: %v", ErrInternal, err)
			}

			slots = append(slots, classifySlot(ctx, courtID, date, start, end, agg, resolver, logger))
			cur = slotEnd
		}
	}

	return slots, nil
}

// classifySlot определяет статус и цену одного слота сетки
func classifySlot(
	ctx context.Context,
	courtID int64,
	date time.Time,
	start, end types.TimeString,
	agg *availability.Aggregator,
	resolver *pricing.Resolver,
	logger Logger,
) *domain.GridSlot {
	slot := &domain.GridSlot{
		StartTime: start,
		EndTime:   end,
	}

	price, err := resolver.ResolvePrice(ctx, courtID, date, start, end)
	if err != nil {
		// Слот без цены показываем закрытым, остальная сетка не страдает
		logger.Warn("GetSlotGrid: slot %s-%s not priced, marking closed: %v", start, end, err)
		slot.Status = domain.SlotClosed
		return slot
	}
	slot.Price = domain.RoundPrice(price)

	if agg.IsAvailable(ctx, courtID, date, start, end) {
		slot.Status = domain.SlotAvailable
	} else {
		slot.Status = domain.SlotBooked
	}

	return slot
}

// buildFullDayGrid строит суточную сетку из 24 фиксированных часовых кадров.
// Кадр вне окон расписания закрыт; кадр, пересечённый подтверждённым
// бронированием, занят; цена — базовая цена покрывающего окна без наценок.
func buildFullDayGrid(snap *snapshot) ([]*domain.GridSlot, error) {
	slots := make([]*domain.GridSlot, 0, domain.HoursPerDay)

	for hour := 0; hour < domain.HoursPerDay; hour++ {
		start, err := types.FromMinutes(hour * domain.SlotDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to build frame start: %v", ErrInternal, err)
		}
		end, err := types.FromMinutes((hour + 1) * domain.SlotDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to build frame end: %v", ErrInternal, err)
		}

		slot := &domain.GridSlot{
			StartTime: start,
			EndTime:   end,
		}

		var covering *domain.WeeklySchedule
		for _, w := range snap.windows {
			if w.Covers(start, end) {
				covering = w
				break
			}
		}

		if covering == nil {
			slot.Status = domain.SlotClosed
			slots = append(slots, slot)
			continue
		}

		slot.Price = domain.RoundPrice(covering.BasePrice)
		slot.Status = domain.SlotAvailable
		for _, d := range snap.details {
			if d.Overlaps(start, end) {
				slot.Status = domain.SlotBooked
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots, nil
}
