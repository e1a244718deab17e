package assign_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/DCMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DCMS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOperator    = "не передан идентификатор оператора"
	msgInvalidSlotID      = "некорректный идентификатор слота"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLaneMismatch       = "тип активности бронирования не соответствует слоту"
	msgIneligible         = "бронирование с неизвестным типом активности не подлежит назначению"
	msgPersistFailed      = "не удалось сохранить назначение, изменение откачено"
)

type Handler struct {
	service AssignmentsService
	logger  Logger
}

func NewHandler(service AssignmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/locations/{locationId}/slots/{slotId}/assignments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID := vars["locationId"]
	rawSlotID := vars["slotId"]

	operatorID := middleware.OperatorID(r.Context())
	if operatorID == "" {
		handlers.RespondUnauthorized(w, msgMissingOperator)
		return
	}

	slotID, err := domain.ParseSlotID(rawSlotID)
	if err != nil {
		h.logger.Warn("POST /assignments - Invalid slot id %q: %v", rawSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req AssignBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assignments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			h.logger.Warn("POST /assignments - Invalid date %q: %v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	err = h.service.Assign(r.Context(), assignments.AssignRequest{
		LocationID: locationID,
		OperatorID: operatorID,
		BookingID:  req.BookingID,
		SlotID:     slotID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("POST /assignments - Invalid input: location_id=%s, slot=%s, error=%v",
				locationID, rawSlotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, assignments.ErrLaneMismatch):
			h.logger.Warn("POST /assignments - Lane mismatch: booking_id=%s, slot=%s", req.BookingID, rawSlotID)
			handlers.RespondError(w, http.StatusConflict, msgLaneMismatch)

		case errors.Is(err, assignments.ErrBookingIneligible):
			h.logger.Warn("POST /assignments - Ineligible booking: booking_id=%s", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgIneligible)

		case errors.Is(err, assignments.ErrPersistence):
			h.logger.Error("POST /assignments - Persistence failed: booking_id=%s, slot=%s, error=%v",
				req.BookingID, rawSlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPersistFailed)

		default:
			h.logger.Error("POST /assignments - Failed to assign: booking_id=%s, slot=%s, error=%v",
				req.BookingID, rawSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
