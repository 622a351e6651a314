package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/salabelleza/SPA-BookingService/internal/api/handlers"
)

const (
	headerUserID    = "X-User-ID"
	headerStaffRole = "X-Staff-Role"

	msgMissingUserID = "falta la cabecera X-User-ID"
	msgInvalidUserID = "cabecera X-User-ID inválida"
	msgStaffOnly     = "esta operación requiere rol de personal"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isStaffKey contextKey = "isStaff"
)

// Auth requires a positive integer X-User-ID header set by the API
// gateway, and records whether X-Staff-Role marks the caller as staff.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isStaffKey, r.Header.Get(headerStaffRole) != "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff rejects non-staff callers. It must run after Auth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user ID, or 0 when Auth did not run
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// IsStaff reports whether the caller carries a staff role
func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(isStaffKey).(bool)
	return staff
}
