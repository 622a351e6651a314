package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/salabelleza/SPA-BookingService/internal/usecase/create_booking"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) Execute(context.Context, *createBooking.Request) (*createBooking.Response, error) {
	return nil, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func postBooking(t *testing.T, useCase CreateBookingUseCase) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"serviceId":7,"bookingDate":"2026-06-08","startTime":"10:00","customerName":"Lucía Fernández","customerPhone":"+54 11 5555-0100","guestCount":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	NewHandler(useCase, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_RejectionDetailInPayload(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "closure reason",
			err:        &createBooking.DayClosedError{Reason: "Navidad"},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "Navidad",
		},
		{
			name:       "business hours bounds",
			err:        &createBooking.OutsideHoursError{Open: types.TimeString("10:00"), Close: types.TimeString("16:00")},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "10:00 a 16:00",
		},
		{
			name:       "daily limit",
			err:        &createBooking.CapacityError{Limit: 3},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "máximo 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postBooking(t, stubUseCase{err: tt.err})

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
		})
	}
}

func TestHandle_ClosureWithoutReasonKeepsBaseMessage(t *testing.T) {
	rec := postBooking(t, stubUseCase{err: &createBooking.DayClosedError{}})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), msgDayClosed)
	assert.NotContains(t, rec.Body.String(), "(")
}

func TestHandle_StorageOutageIsServiceUnavailable(t *testing.T) {
	rec := postBooking(t, stubUseCase{err: createBooking.ErrStorageUnavailable})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
