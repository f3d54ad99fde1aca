package target

import "errors"

var (
	ErrNotFound        = errors.New("target not found")
	ErrInvalidType     = errors.New("invalid target type")
	ErrEmptyPatch      = errors.New("target patch is empty")
	ErrMissingOwner    = errors.New("target owner is required")
	ErrVersionConflict = errors.New("target version conflict")
)
