package service

import "errors"

// Sentinel errors returned by Service views.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrNoLapData     = errors.New("no timed laps for selection")
)
