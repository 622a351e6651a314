package get_admin_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings/models"
)

const (
	msgMissingFilter = "se requiere el parámetro date o status"
	msgInvalidDate   = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidStatus = "estado de reserva desconocido"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?date=YYYY-MM-DD&status=
//
// With a date, lists that day's bookings (optionally narrowed by status).
// With only a status, lists every booking in that status across dates as a
// staff work queue. At least one of the two is required.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	rawStatus := r.URL.Query().Get("status")

	if rawDate == "" && rawStatus == "" {
		h.logger.Warn("GET /admin/bookings - Missing date and status parameters")
		handlers.RespondBadRequest(w, msgMissingFilter)
		return
	}

	var status *domain.BookingStatus
	if rawStatus != "" {
		parsed := domain.BookingStatus(rawStatus)
		status = &parsed
	}

	var result []*models.BookingResponse
	var err error

	if rawDate != "" {
		var date time.Time
		date, err = time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		result, err = h.service.GetDayBookings(r.Context(), date, status)
	} else {
		result, err = h.service.GetByStatus(r.Context(), *status)
	}

	if err != nil {
		if errors.Is(err, bookings.ErrValidation) {
			h.logger.Warn("GET /admin/bookings - Invalid status %q: %v", rawStatus, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to get bookings: date=%q, status=%q, error=%v",
			rawDate, rawStatus, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: date=%q, status=%q, count=%d",
		rawDate, rawStatus, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
