package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
	"github.com/salabelleza/SPA-BookingService/internal/api/middleware"
	createBooking "github.com/salabelleza/SPA-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgInvalidDate        = "la fecha de la reserva no puede estar en el pasado"
	msgDayClosed          = "el negocio está cerrado en la fecha seleccionada"
	msgOutsideHours       = "la hora seleccionada está fuera del horario de atención"
	msgCapacityExceeded   = "no hay cupos disponibles para esta fecha"
	msgSlotTaken          = "el horario seleccionado ya está reservado"
	msgTooManyGuests      = "la cantidad de personas supera el máximo permitido"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: user_id=%d, guests=%d", userID, req.GuestCount)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrDayClosed):
			h.logger.Warn("POST /bookings - Day closed: user_id=%d, date=%s", userID, req.BookingDate)
			msg := msgDayClosed
			var dayClosed *createBooking.DayClosedError
			if errors.As(err, &dayClosed) && dayClosed.Reason != "" {
				msg = fmt.Sprintf("%s (%s)", msgDayClosed, dayClosed.Reason)
			}
			handlers.RespondUnprocessable(w, msg)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: user_id=%d, time=%s", userID, req.StartTime)
			msg := msgOutsideHours
			var outside *createBooking.OutsideHoursError
			if errors.As(err, &outside) {
				msg = fmt.Sprintf("%s (horario: %s a %s)", msgOutsideHours, outside.Open, outside.Close)
			}
			handlers.RespondUnprocessable(w, msg)

		case errors.Is(err, createBooking.ErrDailyCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d, date=%s", userID, req.BookingDate)
			msg := msgCapacityExceeded
			var capacity *createBooking.CapacityError
			if errors.As(err, &capacity) {
				msg = fmt.Sprintf("%s (máximo %d por día)", msgCapacityExceeded, capacity.Limit)
			}
			handlers.RespondConflict(w, msg)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
