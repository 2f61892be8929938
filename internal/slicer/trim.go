package slicer

import (
	"fmt"
	"math"
)

// TrimMode identifies a trim variant.
type TrimMode int

// The three mutually exclusive trim variants.
const (
	// TrimFromStart keeps everything from a start point to the end.
	TrimFromStart TrimMode = iota + 1
	// TrimToEnd keeps everything from the beginning up to an end point.
	TrimToEnd
	// TrimRange keeps a middle section; its end bound is measured backward
	// from the end of the file.
	TrimRange
)

// TrimSpec is a validated trim request. The zero value is invalid; build
// one with NewStartTrim, NewEndTrim, NewRangeTrim, or TrimSpecFrom.
type TrimSpec struct {
	mode  TrimMode
	start float64
	end   float64
}

// Mode returns the trim variant.
func (t TrimSpec) Mode() TrimMode { return t.mode }

// NewStartTrim keeps [startSec, end of file).
func NewStartTrim(startSec float64) (TrimSpec, error) {
	if startSec <= 0 {
		return TrimSpec{}, fmt.Errorf("%w: trim start %.3fs must be positive", ErrInvalidRange, startSec)
	}
	return TrimSpec{mode: TrimFromStart, start: startSec}, nil
}

// NewEndTrim keeps [0, endSec).
func NewEndTrim(endSec float64) (TrimSpec, error) {
	if endSec <= 0 {
		return TrimSpec{}, fmt.Errorf("%w: trim end %.3fs must be positive", ErrInvalidRange, endSec)
	}
	return TrimSpec{mode: TrimToEnd, end: endSec}, nil
}

// NewRangeTrim keeps [startSec, duration-endSec): endSec counts backward
// from the end of the file.
func NewRangeTrim(startSec, endSec float64) (TrimSpec, error) {
	if startSec < 0 {
		return TrimSpec{}, fmt.Errorf("%w: range start %.3fs must not be negative", ErrInvalidRange, startSec)
	}
	if endSec <= 0 {
		return TrimSpec{}, fmt.Errorf("%w: range end %.3fs must be positive", ErrInvalidRange, endSec)
	}
	return TrimSpec{mode: TrimRange, start: startSec, end: endSec}, nil
}

// TrimSpecFrom builds the variant implied by resolved bounds, using the
// sentinel convention from ResolveTimeRange: start 0 and end -1 mean
// "not supplied". Zero or two bounds without isRange is ambiguous.
func TrimSpecFrom(startSec, endSec float64, isRange bool) (TrimSpec, error) {
	if isRange {
		return NewRangeTrim(startSec, endSec)
	}

	hasStart := startSec > 0
	hasEnd := endSec != -1 && endSec != 0
	switch {
	case hasStart && !hasEnd:
		return NewStartTrim(startSec)
	case hasEnd && !hasStart:
		return NewEndTrim(endSec)
	default:
		return TrimSpec{}, ErrAmbiguousTrim
	}
}

// ResolveTrim maps a spec onto a concrete duration, returning the single
// window to keep.
func ResolveTrim(spec TrimSpec, totalMS int64) (Window, error) {
	switch spec.mode {
	case TrimFromStart:
		startMS := toMS(spec.start)
		if startMS >= totalMS {
			return Window{}, fmt.Errorf("%w: trim start %.3fs exceeds audio duration %dms", ErrInvalidRange, spec.start, totalMS)
		}
		return Window{StartMS: startMS, EndMS: totalMS}, nil

	case TrimToEnd:
		endMS := toMS(spec.end)
		if endMS > totalMS {
			return Window{}, fmt.Errorf("%w: trim end %.3fs exceeds audio duration %dms", ErrInvalidRange, spec.end, totalMS)
		}
		return Window{StartMS: 0, EndMS: endMS}, nil

	case TrimRange:
		startMS := toMS(spec.start)
		tailMS := toMS(spec.end)
		if tailMS > totalMS {
			return Window{}, fmt.Errorf("%w: range end %.3fs exceeds audio duration %dms", ErrInvalidRange, spec.end, totalMS)
		}
		endMS := totalMS - tailMS
		if endMS <= startMS {
			return Window{}, fmt.Errorf("%w: range [%dms, %dms) is empty", ErrInvalidRange, startMS, endMS)
		}
		return Window{StartMS: startMS, EndMS: endMS}, nil

	default:
		return Window{}, ErrAmbiguousTrim
	}
}

// toMS converts seconds to whole milliseconds, rounding so that a
// duration that round-tripped through seconds maps back onto itself.
func toMS(sec float64) int64 {
	return int64(math.Round(sec * 1000))
}
