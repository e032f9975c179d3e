package pricing

import "errors"

var (
	// ErrNoBaseSchedule возвращается, когда ни одно окно базового
	// расписания не покрывает запрошенный интервал. Это пробел в
	// конфигурации корта, а не временный сбой.
	ErrNoBaseSchedule = errors.New("pricing: no base schedule covers this court/weekday/window")

	// ErrNotPriced возвращается резолвером, когда ни одно правило не применимо
	ErrNotPriced = errors.New("pricing: no applicable pricing rule")

	// ErrInternal возвращается при сбоях доступа к данным
	ErrInternal = errors.New("pricing: internal error")
)
