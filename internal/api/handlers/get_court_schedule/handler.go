package get_court_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
)

const (
	msgInvalidCourtID = "некорректный идентификатор корта"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil || courtID <= 0 {
		h.logger.Warn("GET /courts/{courtId}/schedule - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.GetCourtSchedule(r.Context(), courtID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{courtId}/schedule - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("GET /courts/{courtId}/schedule - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{courtId}/schedule - Fetched %d windows: court_id=%d",
		len(result.Windows), courtID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
