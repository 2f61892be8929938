package audio

import (
	"math"

	goaudio "github.com/go-audio/audio"
)

// Clip is a fully decoded audio segment: interleaved 16-bit PCM samples
// plus the attributes needed to reason about duration and size.
type Clip struct {
	data       []int
	channels   int
	sampleRate int
	bitDepth   int
}

// NewClip wraps interleaved 16-bit PCM data in a Clip.
func NewClip(data []int, channels, sampleRate int) *Clip {
	if channels < 1 {
		channels = 1
	}
	return &Clip{
		data:       data,
		channels:   channels,
		sampleRate: sampleRate,
		bitDepth:   16,
	}
}

// Channels returns the channel count (1=mono, 2=stereo).
func (c *Clip) Channels() int { return c.channels }

// SampleRate returns the frame rate in Hz.
func (c *Clip) SampleRate() int { return c.sampleRate }

// BitDepth returns the bits per sample.
func (c *Clip) BitDepth() int { return c.bitDepth }

// SampleWidth returns the bytes per sample per channel.
func (c *Clip) SampleWidth() int { return c.bitDepth / 8 }

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	return len(c.data) / c.channels
}

// DurationMS returns the clip duration in milliseconds, rounded to the
// nearest millisecond.
func (c *Clip) DurationMS() int64 {
	if c.sampleRate == 0 {
		return 0
	}
	return int64(math.Round(float64(c.Frames()) / float64(c.sampleRate) * 1000))
}

// Slice returns the sub-clip covering [startMS, endMS). Bounds are
// clamped to the clip, so out-of-range requests yield a shorter or empty
// clip rather than an error. The returned clip shares the backing array.
func (c *Clip) Slice(startMS, endMS int64) *Clip {
	total := c.Frames()

	start := c.frameAt(startMS)
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}

	end := c.frameAt(endMS)
	if end < start {
		end = start
	}
	if end > total {
		end = total
	}

	return &Clip{
		data:       c.data[start*c.channels : end*c.channels],
		channels:   c.channels,
		sampleRate: c.sampleRate,
		bitDepth:   c.bitDepth,
	}
}

// frameAt converts a millisecond offset to a frame index.
func (c *Clip) frameAt(ms int64) int {
	return int(ms * int64(c.sampleRate) / 1000)
}

// PCM returns the clip as a go-audio buffer for encoding.
func (c *Clip) PCM() *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: c.channels,
			SampleRate:  c.sampleRate,
		},
		Data:           c.data,
		SourceBitDepth: c.bitDepth,
	}
}

// normalizeDepth rescales signed samples of the given bit depth to 16-bit.
func normalizeDepth(data []int, depth int) []int {
	switch {
	case depth == 0 || depth == 16:
		return data
	case depth < 16:
		shift := uint(16 - depth)
		for i, v := range data {
			data[i] = v << shift
		}
	default:
		shift := uint(depth - 16)
		for i, v := range data {
			data[i] = v >> shift
		}
	}
	return data
}

// float32ToInt16 converts a [-1,1] sample to 16-bit PCM with clamping.
func float32ToInt16(s float32) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * math.MaxInt16)
}
