package core

import "errors"

var (
	// ErrScanInProgress is returned when a scan or deletion is requested
	// while a scan is running
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrDeleteInProgress is returned when a scan or deletion is requested
	// while a deletion batch is running
	ErrDeleteInProgress = errors.New("deletion in progress")

	// ErrNoPaths is returned when a deletion is requested without paths
	ErrNoPaths = errors.New("no paths given")
)
