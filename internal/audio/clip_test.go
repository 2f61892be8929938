package audio

import (
	"math"
	"testing"
)

// rampClip builds a mono clip at 1kHz whose sample values equal their
// index, which makes slice boundaries easy to assert.
func rampClip(frames int) *Clip {
	data := make([]int, frames)
	for i := range data {
		data[i] = i
	}
	return NewClip(data, 1, 1000)
}

func TestNewClip(t *testing.T) {
	c := NewClip(make([]int, 8), 2, 44100)
	if c.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", c.Channels())
	}
	if c.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", c.SampleRate())
	}
	if c.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", c.BitDepth())
	}
	if c.SampleWidth() != 2 {
		t.Errorf("SampleWidth() = %d, want 2", c.SampleWidth())
	}
	if c.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", c.Frames())
	}

	// A channel count below one is forced to mono.
	c = NewClip(make([]int, 8), 0, 44100)
	if c.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", c.Channels())
	}
}

func TestClip_DurationMS(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		channels int
		rate     int
		want     int64
	}{
		{"one second stereo", 44100 * 2, 2, 44100, 1000},
		{"half second", 22050, 1, 44100, 500},
		{"rounds to nearest millisecond", 441, 1, 44100, 10},
		{"zero rate", 100, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClip(make([]int, tt.frames), tt.channels, tt.rate)
			if got := c.DurationMS(); got != tt.want {
				t.Errorf("DurationMS() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClip_Slice(t *testing.T) {
	t.Run("interior window", func(t *testing.T) {
		c := rampClip(10000)
		s := c.Slice(2000, 3000)
		if s.Frames() != 1000 {
			t.Fatalf("Frames() = %d, want 1000", s.Frames())
		}
		if s.PCM().Data[0] != 2000 {
			t.Errorf("first sample = %d, want 2000", s.PCM().Data[0])
		}
		if s.SampleRate() != 1000 || s.Channels() != 1 {
			t.Errorf("attributes changed: rate %d, channels %d", s.SampleRate(), s.Channels())
		}
	})

	t.Run("bounds are clamped", func(t *testing.T) {
		c := rampClip(10000)
		s := c.Slice(-500, 20000)
		if s.Frames() != 10000 {
			t.Errorf("Frames() = %d, want 10000", s.Frames())
		}
	})

	t.Run("inverted window is empty", func(t *testing.T) {
		c := rampClip(10000)
		s := c.Slice(5000, 4000)
		if s.Frames() != 0 {
			t.Errorf("Frames() = %d, want 0", s.Frames())
		}
	})

	t.Run("window past the end is empty", func(t *testing.T) {
		c := rampClip(10000)
		s := c.Slice(20000, 30000)
		if s.Frames() != 0 {
			t.Errorf("Frames() = %d, want 0", s.Frames())
		}
	})

	t.Run("stereo frames stay paired", func(t *testing.T) {
		data := make([]int, 20000)
		for i := range data {
			data[i] = i
		}
		c := NewClip(data, 2, 1000)

		s := c.Slice(1000, 2000)
		if s.Frames() != 1000 {
			t.Fatalf("Frames() = %d, want 1000", s.Frames())
		}
		// Frame 1000 begins at interleaved index 2000.
		if s.PCM().Data[0] != 2000 {
			t.Errorf("first sample = %d, want 2000", s.PCM().Data[0])
		}
	})
}

func TestClip_PCM(t *testing.T) {
	c := NewClip([]int{1, 2, 3, 4}, 2, 8000)
	buf := c.PCM()

	if buf.Format.NumChannels != 2 {
		t.Errorf("NumChannels = %d, want 2", buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", buf.Format.SampleRate)
	}
	if buf.SourceBitDepth != 16 {
		t.Errorf("SourceBitDepth = %d, want 16", buf.SourceBitDepth)
	}
	if len(buf.Data) != 4 {
		t.Errorf("len(Data) = %d, want 4", len(buf.Data))
	}
}

func TestNormalizeDepth(t *testing.T) {
	t.Run("8-bit scales up", func(t *testing.T) {
		got := normalizeDepth([]int{1, -1, 127}, 8)
		want := []int{256, -256, 32512}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("24-bit scales down", func(t *testing.T) {
		got := normalizeDepth([]int{1 << 8, -(1 << 8), 1 << 23}, 24)
		want := []int{1, -1, 1 << 15}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("16-bit passes through", func(t *testing.T) {
		in := []int{-32768, 0, 32767}
		got := normalizeDepth(in, 16)
		for i, v := range in {
			if got[i] != v {
				t.Errorf("sample %d = %d, want %d", i, got[i], v)
			}
		}
	})
}

func TestFloat32ToInt16(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, -math.MaxInt16},
		{2, math.MaxInt16},
		{-2, -math.MaxInt16},
		{0.5, math.MaxInt16 / 2},
	}

	for _, tt := range tests {
		if got := float32ToInt16(tt.in); got != tt.want {
			t.Errorf("float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
