package get_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// GridMode режим построения сетки слотов
type GridMode string

const (
	// ModeSchedule сетка строится по окнам базового расписания корта
	ModeSchedule GridMode = "schedule"

	// ModeFullDay сетка из 24 часовых кадров на все сутки
	ModeFullDay GridMode = "full-day"
)

// Request запрос на построение сетки слотов
type Request struct {
	CourtID int64
	Date    time.Time
	Mode    GridMode
}

// Response сетка слотов корта на дату
type Response struct {
	CourtID int64
	Date    time.Time
	Mode    GridMode
	Slots   []*domain.GridSlot
}
