package database

import "errors"

var (
	// ErrNotFound is returned by every store when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken is returned when a booking insert would overlap a blocking booking
	// of the same provider.
	ErrSlotTaken = errors.New("provider already has a booking in this interval")
	// ErrStatusChanged is returned when a compare-and-set status update finds the
	// booking in a different status than expected.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
