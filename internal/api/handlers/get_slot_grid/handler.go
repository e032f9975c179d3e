package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getSlotGrid "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_slot_grid"
)

const (
	msgInvalidCourtID = "некорректный идентификатор корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidMode    = "некорректный режим сетки, ожидается schedule или full-day"
	msgCourtNotFound  = "корт не найден"
	msgCourtInactive  = "корт временно не принимает бронирования"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/slots?date=YYYY-MM-DD&mode=schedule|full-day
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil || courtID <= 0 {
		h.logger.Warn("GET /courts/{courtId}/slots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /courts/{courtId}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	mode := getSlotGrid.ModeSchedule
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode = getSlotGrid.GridMode(raw)
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotGrid.Request{
		CourtID: courtID,
		Date:    date,
		Mode:    mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{courtId}/slots - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getSlotGrid.ErrCourtInactive):
			h.logger.Warn("GET /courts/{courtId}/slots - Court inactive: court_id=%d", courtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtInactive)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /courts/{courtId}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMode)

		default:
			h.logger.Error("GET /courts/{courtId}/slots - Failed to build grid: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{courtId}/slots - Grid built: court_id=%d, date=%s, slots=%d",
		courtID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
