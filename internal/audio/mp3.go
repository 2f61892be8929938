package audio

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Channels is fixed by the decoder: output is always stereo.
const mp3Channels = 2

// MP3Decoder decodes MPEG-1 Layer III files.
type MP3Decoder struct{}

// Decode reads the full stream. go-mp3 emits 16-bit little-endian
// interleaved stereo PCM regardless of the source channel layout.
func (MP3Decoder) Decode(r io.ReadSeeker) (*Clip, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3 stream: %w", err)
	}

	pcm := make([]byte, 0, initialPCMCapacity(d.Length()))
	buf := make([]byte, 8192)
	for {
		n, err := d.Read(buf)
		pcm = append(pcm, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
	}

	data := make([]int, len(pcm)/2)
	for i := range data {
		low := uint16(pcm[2*i])
		high := uint16(pcm[2*i+1])
		data[i] = int(int16(low | high<<8))
	}

	return NewClip(data, mp3Channels, d.SampleRate()), nil
}

func initialPCMCapacity(length int64) int64 {
	if length > 0 {
		return length
	}
	return 1 << 16
}

var _ Decoder = MP3Decoder{}
