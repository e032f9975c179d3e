package create_date_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCourtID     = "некорректный идентификатор корта"
	msgCourtNotFound      = "корт не найден"
	msgDuplicateOverride  = "спецрасписание на эту дату и окно уже существует"
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

// Handle POST /api/v1/courts/{courtId}/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil || courtID <= 0 {
		h.logger.Warn("POST /courts/{courtId}/overrides - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req CreateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{courtId}/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOverride(r.Context(), req.ToServiceRequest(courtID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCourtNotFound):
			h.logger.Warn("POST /courts/{courtId}/overrides - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, schedule.ErrDuplicateOverride):
			h.logger.Warn("POST /courts/{courtId}/overrides - Duplicate override: court_id=%d, date=%s",
				courtID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateOverride)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /courts/{courtId}/overrides - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /courts/{courtId}/overrides - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{courtId}/overrides - Override created: override_id=%d, court_id=%d",
		result.ID, courtID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
