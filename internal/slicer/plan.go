package slicer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wambua/sonicslicer/internal/audio"
)

// Window is a half-open interval of audio time in milliseconds.
type Window struct {
	StartMS int64
	EndMS   int64
}

// DurationMS returns the window length.
func (w Window) DurationMS() int64 { return w.EndMS - w.StartMS }

// PlanWindows partitions [0, totalMS) into consecutive chunkMS windows.
// The windows are ascending, non-overlapping, and cover the whole
// duration; only the final window may be shorter than chunkMS.
//
// With strict set, a short final window is dropped. A positive sections
// value keeps only the first sections windows, applied after the strict
// drop. An empty result yields ErrNoChunks.
func PlanWindows(totalMS, chunkMS int64, sections int, strict bool) ([]Window, error) {
	if chunkMS <= 0 {
		return nil, fmt.Errorf("%w: chunk duration %dms", ErrInvalidSize, chunkMS)
	}

	windows := chunkWindows(totalMS, chunkMS)

	if strict && len(windows) > 0 && windows[len(windows)-1].DurationMS() < chunkMS {
		windows = windows[:len(windows)-1]
	}
	if sections > 0 && len(windows) > sections {
		windows = windows[:sections]
	}

	if len(windows) == 0 {
		return nil, ErrNoChunks
	}
	return windows, nil
}

// chunkWindows builds the raw partition of [0, totalMS).
func chunkWindows(totalMS, chunkMS int64) []Window {
	var windows []Window
	for start := int64(0); start < totalMS; start += chunkMS {
		end := start + chunkMS
		if end > totalMS {
			end = totalMS
		}
		windows = append(windows, Window{StartMS: start, EndMS: end})
	}
	return windows
}

// PlanCut splits [0, totalMS) into exactly two windows at cutMS.
func PlanCut(totalMS, cutMS int64) ([]Window, error) {
	if cutMS <= 0 {
		return nil, fmt.Errorf("%w: cut point %dms", ErrInvalidSize, cutMS)
	}
	if cutMS >= totalMS {
		return nil, fmt.Errorf("%w: cut at %dms, duration %dms", ErrExceedsDuration, cutMS, totalMS)
	}
	return []Window{
		{StartMS: 0, EndMS: cutMS},
		{StartMS: cutMS, EndMS: totalMS},
	}, nil
}

// PartPath returns the destination for a split chunk: <stem>-part-NNN with
// the target format's extension, 1-indexed. The file lands in outputDir
// when set, else next to the source.
func PartPath(src string, index int, format audio.Format, outputDir string) string {
	return filepath.Join(destDir(src, outputDir),
		fmt.Sprintf("%s-part-%03d%s", stem(src), index, format.Ext()))
}

// TrimmedPath returns the destination for a trim: <stem>-trimmed with the
// target format's extension.
func TrimmedPath(src string, format audio.Format, outputDir string) string {
	return filepath.Join(destDir(src, outputDir), stem(src)+"-trimmed"+format.Ext())
}

func stem(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func destDir(src, outputDir string) string {
	if outputDir != "" {
		return outputDir
	}
	return filepath.Dir(src)
}
