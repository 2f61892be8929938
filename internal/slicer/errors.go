package slicer

import "errors"

// Static errors for slicing operations.
var (
	// ErrInvalidUnit is returned when a size, duration, or bitrate string
	// carries an unknown or missing unit suffix.
	ErrInvalidUnit = errors.New("slicer: invalid unit")
	// ErrInvalidSize is returned when a size or duration value is not positive.
	ErrInvalidSize = errors.New("slicer: value must be positive")
	// ErrInvalidRange is returned when a trim bound falls outside the audio.
	ErrInvalidRange = errors.New("slicer: invalid time range")
	// ErrAmbiguousTrim is returned when zero or several trim bounds are set.
	ErrAmbiguousTrim = errors.New("slicer: specify exactly one of trim start, trim end, or trim range")
	// ErrExceedsDuration is returned when a single-split cut point lies at or
	// beyond the end of the audio.
	ErrExceedsDuration = errors.New("slicer: split point exceeds audio duration")
	// ErrNoChunks is returned when a plan yields no windows. Callers treat it
	// as recoverable: log a warning and continue with an empty result.
	ErrNoChunks = errors.New("slicer: no chunks produced")
	// ErrFileNotFound is returned when the source path does not exist.
	ErrFileNotFound = errors.New("slicer: file not found")
	// ErrNotAFile is returned when the source path is not a regular file.
	ErrNotAFile = errors.New("slicer: not a regular file")
)
