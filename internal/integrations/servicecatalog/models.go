package servicecatalog

// Service is the catalog's view of a bookable spa service.
// Name, price and duration are display data resolved at read time; they
// are never snapshotted into bookings, so catalog edits are reflected in
// historical views.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// DeletedServicePlaceholder is displayed for bookings whose service was
// removed from the catalog. A dangling reference is tolerated, not an error.
const DeletedServicePlaceholder = "Servicio eliminado"

// ErrorResponse is the catalog's error payload
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
