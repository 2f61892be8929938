package audio

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC files.
type FLACDecoder struct{}

// Decode parses every frame of a FLAC stream, interleaving the
// per-channel subframes into a single PCM buffer.
func (FLACDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("open flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels < 1 {
		return nil, ErrNoPCMData
	}
	depth := int(info.BitsPerSample)

	data := make([]int, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}
		if len(frame.Subframes) < channels {
			return nil, fmt.Errorf("decode flac: frame has %d subframes, want %d", len(frame.Subframes), channels)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				data = append(data, int(frame.Subframes[ch].Samples[i]))
			}
		}
	}

	return NewClip(normalizeDepth(data, depth), channels, int(info.SampleRate)), nil
}

var _ Decoder = FLACDecoder{}
