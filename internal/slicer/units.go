package slicer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SizeUnit is a parsed size suffix.
type SizeUnit string

// Accepted size suffixes. Bare integers default to kilobytes.
const (
	UnitKilobytes SizeUnit = "kb"
	UnitMegabytes SizeUnit = "mb"
)

// Bytes scales a value in this unit to bytes.
func (u SizeUnit) Bytes(v int64) int64 {
	if u == UnitMegabytes {
		return v * 1024 * 1024
	}
	return v * 1024
}

// TimeUnit is a parsed duration suffix.
type TimeUnit string

// Accepted duration suffixes. Bare numerics default to seconds.
const (
	UnitSeconds TimeUnit = "sec"
	UnitMinutes TimeUnit = "min"
)

// Seconds scales a value in this unit to seconds.
func (u TimeUnit) Seconds(v float64) float64 {
	if u == UnitMinutes {
		return v * 60
	}
	return v
}

// Milliseconds scales a value in this unit to whole milliseconds.
func (u TimeUnit) Milliseconds(v float64) int64 {
	return int64(math.Round(u.Seconds(v) * 1000))
}

// ParseSize parses "<n>kb", "<n>mb", or a bare integer (kilobytes).
// The suffix is case-insensitive and the value must be a positive integer.
func ParseSize(s string) (int64, SizeUnit, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	unit := UnitKilobytes
	num := raw
	switch {
	case strings.HasSuffix(raw, string(UnitKilobytes)):
		num = strings.TrimSuffix(raw, string(UnitKilobytes))
	case strings.HasSuffix(raw, string(UnitMegabytes)):
		num = strings.TrimSuffix(raw, string(UnitMegabytes))
		unit = UnitMegabytes
	}

	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: size %q (want e.g. 700kb, 10mb, 700)", ErrInvalidUnit, s)
	}
	if v <= 0 {
		return 0, "", fmt.Errorf("%w: size %q", ErrInvalidSize, s)
	}
	return v, unit, nil
}

// ParseDuration parses "<n>sec", "<n>min", or a bare numeric (seconds).
// The suffix is case-insensitive and the value must be positive.
func ParseDuration(s string) (float64, TimeUnit, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	unit := UnitSeconds
	num := raw
	switch {
	case strings.HasSuffix(raw, string(UnitSeconds)):
		num = strings.TrimSuffix(raw, string(UnitSeconds))
	case strings.HasSuffix(raw, string(UnitMinutes)):
		num = strings.TrimSuffix(raw, string(UnitMinutes))
		unit = UnitMinutes
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: duration %q (want e.g. 5sec, 2min, 90)", ErrInvalidUnit, s)
	}
	if v <= 0 {
		return 0, "", fmt.Errorf("%w: duration %q", ErrInvalidSize, s)
	}
	return v, unit, nil
}

// NormalizeBitrate reduces a bitrate string to "<digits>k" form:
// "192" and "192kbps" both become "192k", "192k" stays as is.
func NormalizeBitrate(s string) (string, error) {
	raw := strings.TrimSpace(s)

	if prefix, ok := strings.CutSuffix(raw, "k"); ok && prefix != "" && isDigits(prefix) {
		return raw, nil
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: bitrate %q has no digits", ErrInvalidUnit, s)
	}
	return b.String() + "k", nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveTimeRange interprets the raw trim bound arguments. The defaults
// "0" (start) and "-1" (end) mean "not supplied". Unit-suffixed values go
// through ParseDuration; bare numbers are seconds. isRange is true only
// when both bounds were supplied, which selects the dual-bound trim whose
// end is measured backward from the end of the file.
func ResolveTimeRange(rawStart, rawEnd string) (startSec, endSec float64, isRange bool, err error) {
	startSec, err = parseTrimBound(rawStart, 0)
	if err != nil {
		return 0, 0, false, fmt.Errorf("trim start: %w", err)
	}
	endSec, err = parseTrimBound(rawEnd, -1)
	if err != nil {
		return 0, 0, false, fmt.Errorf("trim end: %w", err)
	}

	isRange = startSec > 0 && endSec != -1
	return startSec, endSec, isRange, nil
}

// parseTrimBound accepts bare numbers as seconds, keeping the sentinel
// values parseable, and defers suffixed values to ParseDuration.
func parseTrimBound(raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}

	v, unit, err := ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return unit.Seconds(v), nil
}
