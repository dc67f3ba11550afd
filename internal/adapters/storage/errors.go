package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrSave      = errors.New("ticket save failed")
	ErrLoad      = errors.New("ticket load failed")
	ErrNoTickets = errors.New("no ticket file found")
)
