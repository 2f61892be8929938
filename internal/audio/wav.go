package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// ErrNoPCMData is returned when a stream decodes to zero usable samples.
var ErrNoPCMData = errors.New("audio: no pcm data")

// WAVDecoder decodes RIFF/WAVE PCM files.
type WAVDecoder struct{}

// Decode reads the full PCM payload of a WAV stream.
func (WAVDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(r)

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read wav pcm: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, ErrNoPCMData
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}

	data := buf.Data
	if depth == 8 {
		// 8-bit WAV is unsigned, recenter before rescaling.
		for i, v := range data {
			data[i] = v - 128
		}
	}

	return NewClip(normalizeDepth(data, depth), buf.Format.NumChannels, buf.Format.SampleRate), nil
}

var _ Decoder = WAVDecoder{}
