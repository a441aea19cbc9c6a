package schedule

import "errors"

var (
	ErrInvalidInput     = errors.New("schedule: invalid input")
	ErrTemplateNotFound = errors.New("schedule: template not found")
	ErrInternal         = errors.New("schedule: internal error")
)
