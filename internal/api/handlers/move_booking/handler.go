package move_booking

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
	msgInvalidFromSlot    = "некорректный идентификатор исходного слота"
	msgInvalidToSlot      = "некорректный идентификатор целевого слота"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLaneMismatch       = "тип активности бронирования не соответствует целевому слоту"
	msgMoveHalfFailed     = "перенос не завершён: бронирование снято, но не назначено на целевой слот"
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

// Handle POST /api/v1/locations/{locationId}/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID := vars["locationId"]
	bookingID := vars["bookingId"]

	operatorID := middleware.OperatorID(r.Context())
	if operatorID == "" {
		handlers.RespondUnauthorized(w, msgMissingOperator)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fromSlotID, err := domain.ParseSlotID(req.FromSlotID)
	if err != nil {
		h.logger.Warn("POST /move - Invalid source slot id %q: %v", req.FromSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidFromSlot)
		return
	}
	toSlotID, err := domain.ParseSlotID(req.ToSlotID)
	if err != nil {
		h.logger.Warn("POST /move - Invalid target slot id %q: %v", req.ToSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidToSlot)
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			h.logger.Warn("POST /move - Invalid date %q: %v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	err = h.service.Move(r.Context(), assignments.MoveRequest{
		LocationID: locationID,
		OperatorID: operatorID,
		BookingID:  bookingID,
		FromSlotID: fromSlotID,
		ToSlotID:   toSlotID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("POST /move - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, assignments.ErrLaneMismatch), errors.Is(err, assignments.ErrBookingIneligible):
			h.logger.Warn("POST /move - Lane mismatch: booking_id=%s, to=%s", bookingID, req.ToSlotID)
			handlers.RespondError(w, http.StatusConflict, msgLaneMismatch)

		case errors.Is(err, assignments.ErrPersistence):
			// Принятый режим отказа: снятие прошло, назначение нет
			h.logger.Error("POST /move - Second half failed, booking left unassigned: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgMoveHalfFailed)

		default:
			h.logger.Error("POST /move - Failed to move: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
