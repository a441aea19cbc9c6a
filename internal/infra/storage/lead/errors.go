package lead

import "errors"

var (
	// ErrLeadNotFound is returned when no lead matches the given id
	ErrLeadNotFound = errors.New("lead.repository: lead not found")

	// ErrAlreadyTerminal is returned when a conditional update finds the
	// lead no longer in aguardando_pagamento. Callers use it as the
	// idempotency signal for duplicate webhook deliveries.
	ErrAlreadyTerminal = errors.New("lead.repository: lead already in a terminal status")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("lead.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("lead.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("lead.repository: failed to scan row")
)
