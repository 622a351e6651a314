package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
	"github.com/salabelleza/SPA-BookingService/internal/api/middleware"
	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/internal/service/bookings"
)

const (
	msgInvalidUserID = "ID de usuario inválido"
	msgInvalidQuery  = "parámetros de consulta inválidos"
	msgForbidden     = "acceso denegado"
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

// Handle GET /api/v1/users/{userId}/bookings?view=upcoming|past&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Customers can only list their own history
	requesterID := middleware.UserID(r.Context())
	if !middleware.IsStaff(r.Context()) && requesterID != userID {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: user_id=%d, requester_id=%d",
			userID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	view := r.URL.Query().Get("view")

	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed := domain.BookingStatus(raw)
		status = &parsed
	}

	result, err := h.service.GetUserBookings(r.Context(), userID, view, status)
	if err != nil {
		if errors.Is(err, bookings.ErrValidation) {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid query: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
