package audio

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis files.
type VorbisDecoder struct{}

// Decode reads the full stream, converting float samples to 16-bit PCM.
func (VorbisDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	or, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open ogg stream: %w", err)
	}

	var data []int
	buf := make([]float32, 8192)
	for {
		// Read returns the number of interleaved float values written.
		n, err := or.Read(buf)
		for _, s := range buf[:n] {
			data = append(data, int(float32ToInt16(s)))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode ogg vorbis: %w", err)
		}
	}

	return NewClip(data, or.Channels(), or.SampleRate()), nil
}

var _ Decoder = VorbisDecoder{}
