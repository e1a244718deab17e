package unassign_slot

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
	msgMissingOperator = "не передан идентификатор оператора"
	msgInvalidSlotID   = "некорректный идентификатор слота"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPersistFailed   = "не удалось сохранить снятие, часть изменений откачена"
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

// HandleBooking DELETE /api/v1/locations/{locationId}/slots/{slotId}/assignments/{bookingId}
func (h *Handler) HandleBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	h.handle(w, r, &bookingID)
}

// HandleAll DELETE /api/v1/locations/{locationId}/slots/{slotId}/assignments
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, nil)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, bookingID *string) {
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
		h.logger.Warn("DELETE /assignments - Invalid slot id %q: %v", rawSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var date time.Time
	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err = time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("DELETE /assignments - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	err = h.service.Unassign(r.Context(), assignments.UnassignRequest{
		LocationID: locationID,
		OperatorID: operatorID,
		SlotID:     slotID,
		BookingID:  bookingID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("DELETE /assignments - Invalid input: location_id=%s, slot=%s, error=%v",
				locationID, rawSlotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, assignments.ErrPersistence):
			h.logger.Error("DELETE /assignments - Persistence failed: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPersistFailed)

		default:
			h.logger.Error("DELETE /assignments - Failed to unassign: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
