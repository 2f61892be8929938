package slicer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wambua/sonicslicer/internal/audio"
)

// ChunkDurationForSize projects a byte budget onto a chunk duration.
//
// For uncompressed targets the source PCM attributes give the exact byte
// rate: sampleWidth * channels * frameRate / 1000 bytes per millisecond.
// For compressed targets the byte rate is estimated from the target
// bitrate: kbps * 1000 / 8000 bytes per millisecond. The result is the
// floor of maxBytes over the byte rate.
func ChunkDurationForSize(maxBytes int64, format audio.Format, bitrate string, sampleWidth, channels, frameRate int) (int64, error) {
	if maxBytes <= 0 {
		return 0, fmt.Errorf("%w: max size %d bytes", ErrInvalidSize, maxBytes)
	}

	var bytesPerMS float64
	if format.Compressed() {
		kbps, err := bitrateKbps(bitrate)
		if err != nil {
			return 0, err
		}
		bytesPerMS = kbps * 1000 / 8000
	} else {
		bytesPerMS = float64(sampleWidth*channels*frameRate) / 1000
	}

	if bytesPerMS <= 0 {
		return 0, fmt.Errorf("%w: cannot derive a byte rate for %s", ErrInvalidSize, format)
	}
	return int64(float64(maxBytes) / bytesPerMS), nil
}

// bitrateKbps extracts the numeric part of a normalized bitrate.
func bitrateKbps(bitrate string) (float64, error) {
	num := strings.TrimSuffix(strings.TrimSpace(bitrate), "k")
	kbps, err := strconv.ParseFloat(num, 64)
	if err != nil || kbps <= 0 {
		return 0, fmt.Errorf("%w: bitrate %q", ErrInvalidSize, bitrate)
	}
	return kbps, nil
}
