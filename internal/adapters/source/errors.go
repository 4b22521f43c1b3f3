package source

import "errors"

// Sentinel errors for dataset sources.
var (
	ErrLoad = errors.New("dataset load failed")
	ErrSave = errors.New("dataset save failed")
)
