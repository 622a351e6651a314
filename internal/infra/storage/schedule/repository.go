package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
	"github.com/salabelleza/SPA-BookingService/pkg/dbmetrics"
	"github.com/salabelleza/SPA-BookingService/pkg/psqlbuilder"
)

const configColumns = "key, weekly_template, exceptions, max_daily_bookings, max_guests_per_booking, prevent_time_conflicts, created_at, updated_at"

// Repository stores the singleton schedule configuration. The weekly
// template and exceptions live in JSONB columns of a single row keyed by
// domain.ScheduleConfigKey.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a schedule configuration repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get loads the configuration row. Returns ErrConfigNotFound when the
// singleton has never been persisted.
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekly_template",
		"exceptions",
		"max_daily_bookings",
		"max_guests_per_booking",
		"prevent_time_conflicts",
		"created_at",
		"updated_at",
	).
		From("schedule_config").
		Where(squirrel.Eq{"key": domain.ScheduleConfigKey}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg                  domain.ScheduleConfig
		templateRaw          []byte
		exceptionsRaw        []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&templateRaw,
		&exceptionsRaw,
		&cfg.MaxDailyBookings,
		&cfg.MaxGuestsPerBooking,
		&cfg.PreventTimeConflicts,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(templateRaw, &cfg.WeeklyTemplate); err != nil {
		return nil, fmt.Errorf("%w: Get - decode weekly template: %v", ErrEncode, err)
	}
	if err := json.Unmarshal(exceptionsRaw, &cfg.Exceptions); err != nil {
		return nil, fmt.Errorf("%w: Get - decode exceptions: %v", ErrEncode, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// CreateDefault persists the documented default configuration if the
// singleton row does not exist yet. Concurrent first reads are safe: the
// insert is ON CONFLICT DO NOTHING, so exactly one writer wins and every
// caller re-reads the same durable row.
func (r *Repository) CreateDefault(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaults := domain.DefaultScheduleConfig()
	templateRaw, exceptionsRaw, err := encodeDocuments(defaults)
	if err != nil {
		return fmt.Errorf("%w: CreateDefault - encode defaults: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"key",
			"weekly_template",
			"exceptions",
			"max_daily_bookings",
			"max_guests_per_booking",
			"prevent_time_conflicts",
		).
		Values(
			domain.ScheduleConfigKey,
			templateRaw,
			exceptionsRaw,
			defaults.MaxDailyBookings,
			defaults.MaxGuestsPerBooking,
			defaults.PreventTimeConflicts,
		).
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDefault - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Update replaces the stored configuration with cfg. The caller merges
// partial updates over the current value first; this method writes the
// complete record.
func (r *Repository) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	templateRaw, exceptionsRaw, err := encodeDocuments(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - encode config: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("weekly_template", templateRaw).
		Set("exceptions", exceptionsRaw).
		Set("max_daily_bookings", cfg.MaxDailyBookings).
		Set("max_guests_per_booking", cfg.MaxGuestsPerBooking).
		Set("prevent_time_conflicts", cfg.PreventTimeConflicts).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"key": domain.ScheduleConfigKey}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

func encodeDocuments(cfg *domain.ScheduleConfig) (template, exceptions []byte, err error) {
	template, err = json.Marshal(cfg.WeeklyTemplate)
	if err != nil {
		return nil, nil, err
	}

	// Persist an empty array rather than SQL NULL for a nil slice.
	excs := cfg.Exceptions
	if excs == nil {
		excs = []domain.ScheduleException{}
	}
	exceptions, err = json.Marshal(excs)
	if err != nil {
		return nil, nil, err
	}

	return template, exceptions, nil
}
