package update_schedule

import (
	"errors"
	"net/http"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
	"github.com/salabelleza/SPA-BookingService/internal/service/schedule"
	"github.com/salabelleza/SPA-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
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

// Handle PUT /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrValidation) {
			h.logger.Warn("PUT /schedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /schedule - Failed to update schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /schedule - Schedule updated successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
