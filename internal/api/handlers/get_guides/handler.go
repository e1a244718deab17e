package get_guides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/DCMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DCMS-ScheduleService/internal/service/roster"
)

type Handler struct {
	service RosterService
	logger  Logger
}

func NewHandler(service RosterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/guides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	guides, err := h.service.GetGuides(r.Context(), locationID)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidInput):
			h.logger.Warn("GET /guides - Invalid input: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /guides - Failed to list guides: location_id=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(guides))
}
