package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the given id
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken is returned when the partial unique index on (data_hora)
	// for non-cancelled bookings rejects a write. This is the authoritative
	// conflict signal; pre-flight reads are an optimization only.
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
