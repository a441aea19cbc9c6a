package patient

import "errors"

var (
	// ErrPatientNotFound is returned when no patient matches the lookup
	ErrPatientNotFound = errors.New("patient.repository: patient not found")

	// ErrDuplicate is returned when the unique constraints on email or CPF
	// reject an insert
	ErrDuplicate = errors.New("patient.repository: patient already exists")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("patient.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("patient.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("patient.repository: failed to scan row")
)
