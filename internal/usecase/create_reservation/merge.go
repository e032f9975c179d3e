package create_reservation

import (
	"sort"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// mergeSlots склеивает смежные слоты в минимальное число интервалов.
// Слоты сортируются по началу; интервал, начинающийся ровно там, где
// закончился предыдущий, вливается в него с суммированием цены.
// Интервалы с зазором остаются отдельными строками.
func mergeSlots(slots []SlotInput) []*domain.RequestedSlot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]SlotInput, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Minutes() < sorted[j].StartTime.Minutes()
	})

	merged := []*domain.RequestedSlot{{
		StartTime: sorted[0].StartTime,
		EndTime:   sorted[0].EndTime,
		Price:     sorted[0].Price,
	}}

	for _, slot := range sorted[1:] {
		last := merged[len(merged)-1]
		if last.EndTime.Equal(slot.StartTime) {
			last.EndTime = slot.EndTime
			last.Price += slot.Price
			continue
		}
		merged = append(merged, &domain.RequestedSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     slot.Price,
		})
	}

	for _, m := range merged {
		m.Price = domain.RoundPrice(m.Price)
	}

	return merged
}
