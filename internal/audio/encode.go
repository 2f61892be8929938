package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
)

// wavAudioFormat is the RIFF format tag for linear PCM.
const wavAudioFormat = 1

// EncodeWAV writes the clip to w as PCM WAV.
func EncodeWAV(clip *Clip, w io.WriteSeeker) error {
	e := wav.NewEncoder(w, clip.SampleRate(), clip.BitDepth(), clip.Channels(), wavAudioFormat)
	if err := e.Write(clip.PCM()); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// EncodeAIFF writes the clip to w as PCM AIFF.
func EncodeAIFF(clip *Clip, w io.WriteSeeker) error {
	e := aiff.NewEncoder(w, clip.SampleRate(), clip.BitDepth(), clip.Channels())
	if err := e.Write(clip.PCM()); err != nil {
		return fmt.Errorf("write aiff data: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("finalize aiff: %w", err)
	}
	return nil
}
