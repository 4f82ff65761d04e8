package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrTagNotFound     = errors.New("tag not found")
)
