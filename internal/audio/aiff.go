package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// AIFFDecoder decodes AIFF/AIFF-C PCM files.
type AIFFDecoder struct{}

// Decode reads the full PCM payload of an AIFF stream.
func (AIFFDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	d := aiff.NewDecoder(r)

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read aiff pcm: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, ErrNoPCMData
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}

	return NewClip(normalizeDepth(buf.Data, depth), buf.Format.NumChannels, buf.Format.SampleRate), nil
}

var _ Decoder = AIFFDecoder{}
