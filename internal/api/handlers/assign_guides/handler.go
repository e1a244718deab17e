package assign_guides

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
	msgGuideNotEligible   = "гид не найден среди персонала с допустимыми ролями"
	msgPersistFailed      = "не удалось сохранить гидов для части бронирований"
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

// Handle PUT /api/v1/locations/{locationId}/slots/{slotId}/guides
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
		h.logger.Warn("PUT /guides - Invalid slot id %q: %v", rawSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req AssignGuidesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /guides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			h.logger.Warn("PUT /guides - Invalid date %q: %v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	err = h.service.AssignGuides(r.Context(), assignments.AssignGuidesRequest{
		LocationID: locationID,
		OperatorID: operatorID,
		SlotID:     slotID,
		GuideIDs:   req.GuideIDs,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("PUT /guides - Invalid input: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, assignments.ErrGuideNotEligible):
			h.logger.Warn("PUT /guides - Guide not eligible: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondBadRequest(w, msgGuideNotEligible)

		case errors.Is(err, assignments.ErrPersistence):
			h.logger.Error("PUT /guides - Persistence failed: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPersistFailed)

		default:
			h.logger.Error("PUT /guides - Failed to assign guides: slot=%s, error=%v", rawSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
