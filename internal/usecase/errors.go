package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflicting resource")
	// ErrHasDependents blocks deletes that would orphan child documents.
	ErrHasDependents = errors.New("resource still referenced")
)
