package availability

import "errors"

var (
	// ErrTemplateNotFound is returned when no template exists for the weekday
	ErrTemplateNotFound = errors.New("availability.repository: template not found")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
