package audio

import (
	"os"
	"path/filepath"
	"testing"
)

// encodeTestWAV writes the clip to a file and returns its path.
func encodeTestWAV(t *testing.T, clip *Clip) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	if err := EncodeWAV(clip, f); err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestWAVDecoder_RoundTrip(t *testing.T) {
	samples := []int{0, 100, -100, 32000, -32000, 7, -7, 12345}
	src := NewClip(samples, 2, 44100)

	path := encodeTestWAV(t, src)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer f.Close()

	clip, err := WAVDecoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if clip.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", clip.Channels())
	}
	if clip.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", clip.SampleRate())
	}
	if clip.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", clip.Frames())
	}

	got := clip.PCM().Data
	for i, want := range samples {
		if got[i] != want {
			t.Errorf("sample %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestWAVDecoder_NotAWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("this is not a riff stream"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer f.Close()

	if _, err := (WAVDecoder{}).Decode(f); err == nil {
		t.Error("expected decode error for non-wav input")
	}
}
