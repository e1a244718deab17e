package get_day_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/DCMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/DCMS-ScheduleService/internal/usecase/get_day_schedule"
)

const (
	msgMissingDate = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/schedule?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), getDaySchedule.Request{
		LocationID: locationID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /schedule - Failed to build schedule: location_id=%s, date=%s, error=%v",
				locationID, rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
