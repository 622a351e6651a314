package schedule

import "errors"

var (
	// ErrConfigNotFound is returned when no schedule configuration row exists
	ErrConfigNotFound = errors.New("schedule.repository: config not found")

	// ErrBuildQuery is returned when building a SQL statement fails
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL statement fails
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncode is returned when the JSONB documents cannot be encoded or decoded
	ErrEncode = errors.New("schedule.repository: failed to encode config")
)
