package models

import (
	"time"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/pkg/types"
)

// Request models

// DayTemplateDTO is one weekday entry in a settings payload
type DayTemplateDTO struct {
	Day       int    `json:"day"` // 0=Sunday .. 6=Saturday
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
}

// ExceptionDTO is one date override in a settings payload
type ExceptionDTO struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Type   string  `json:"type"` // "closed" or "custom"
	Reason *string `json:"reason,omitempty"`
}

// UpdateScheduleRequest is a typed partial update. A nil field is left
// untouched; a present field replaces the stored value wholesale (array
// elements are never deep-merged). Unknown JSON fields are rejected at
// the API boundary.
type UpdateScheduleRequest struct {
	WeeklyTemplate       *[]DayTemplateDTO `json:"weeklyTemplate,omitempty"`
	Exceptions           *[]ExceptionDTO   `json:"exceptions,omitempty"`
	MaxDailyBookings     *int              `json:"maxDailyBookings,omitempty"`
	MaxGuestsPerBooking  *int              `json:"maxGuestsPerBooking,omitempty"`
	PreventTimeConflicts *bool             `json:"preventTimeConflicts,omitempty"`
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateScheduleRequest) IsEmpty() bool {
	return r.WeeklyTemplate == nil &&
		r.Exceptions == nil &&
		r.MaxDailyBookings == nil &&
		r.MaxGuestsPerBooking == nil &&
		r.PreventTimeConflicts == nil
}

// Response models

// ScheduleResponse is the full configuration as served to clients
type ScheduleResponse struct {
	WeeklyTemplate       []DayTemplateDTO `json:"weeklyTemplate"`
	Exceptions           []ExceptionDTO   `json:"exceptions"`
	MaxDailyBookings     int              `json:"maxDailyBookings"`
	MaxGuestsPerBooking  int              `json:"maxGuestsPerBooking"`
	PreventTimeConflicts bool             `json:"preventTimeConflicts"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// Conversions

// FromDomainConfig converts a domain configuration to its DTO
func FromDomainConfig(cfg *domain.ScheduleConfig) *ScheduleResponse {
	if cfg == nil {
		return nil
	}

	resp := &ScheduleResponse{
		WeeklyTemplate:       make([]DayTemplateDTO, len(cfg.WeeklyTemplate)),
		Exceptions:           make([]ExceptionDTO, len(cfg.Exceptions)),
		MaxDailyBookings:     cfg.MaxDailyBookings,
		MaxGuestsPerBooking:  cfg.MaxGuestsPerBooking,
		PreventTimeConflicts: cfg.PreventTimeConflicts,
		CreatedAt:            cfg.CreatedAt,
		UpdatedAt:            cfg.UpdatedAt,
	}

	for i, entry := range cfg.WeeklyTemplate {
		resp.WeeklyTemplate[i] = DayTemplateDTO{
			Day:       entry.Day,
			IsOpen:    entry.IsOpen,
			OpenTime:  entry.OpenTime.String(),
			CloseTime: entry.CloseTime.String(),
		}
	}

	for i, exc := range cfg.Exceptions {
		resp.Exceptions[i] = ExceptionDTO{
			Date:   exc.Date,
			Type:   string(exc.Type),
			Reason: exc.Reason,
		}
	}

	return resp
}

// ToDomainTemplate converts weekday DTOs to domain entries. Callers
// validate the payload before converting.
func ToDomainTemplate(entries []DayTemplateDTO) []domain.DayTemplate {
	out := make([]domain.DayTemplate, len(entries))
	for i, entry := range entries {
		out[i] = domain.DayTemplate{
			Day:       entry.Day,
			IsOpen:    entry.IsOpen,
			OpenTime:  types.TimeString(entry.OpenTime),
			CloseTime: types.TimeString(entry.CloseTime),
		}
	}
	return out
}

// ToDomainExceptions converts exception DTOs to domain entries
func ToDomainExceptions(entries []ExceptionDTO) []domain.ScheduleException {
	out := make([]domain.ScheduleException, len(entries))
	for i, exc := range entries {
		out[i] = domain.ScheduleException{
			Date:   exc.Date,
			Type:   domain.ExceptionType(exc.Type),
			Reason: exc.Reason,
		}
	}
	return out
}
