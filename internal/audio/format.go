package audio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned when a format name has no codec.
var ErrUnsupportedFormat = errors.New("audio: unsupported format")

// Format is a target encoding format.
type Format string

// Supported target formats. AAC is a known future target and is rejected
// until an encoder lands.
const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatOGG  Format = "ogg"
	FormatFLAC Format = "flac"
	FormatAIFF Format = "aiff"
)

// SupportedFormats lists every format that can be both decoded and encoded.
func SupportedFormats() []Format {
	return []Format{FormatWAV, FormatMP3, FormatOGG, FormatFLAC, FormatAIFF}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range SupportedFormats() {
		if name == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, formatNames())
}

func formatNames() string {
	names := make([]string, 0, len(SupportedFormats()))
	for _, f := range SupportedFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func (f Format) String() string { return string(f) }

// Ext returns the file extension for the format, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// Compressed reports whether the format needs a bitrate-driven encode.
// WAV and AIFF are written as raw PCM.
func (f Format) Compressed() bool {
	return f != FormatWAV && f != FormatAIFF
}
