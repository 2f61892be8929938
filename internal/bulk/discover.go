// Package bulk fans slicing work out across many source files: it
// discovers supported audio files in a directory and runs one task per
// file on a bounded worker pool, capturing per-file outcomes.
package bulk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wambua/sonicslicer/internal/audio"
)

// ErrNoSupportedFiles is returned when a directory contains no decodable
// audio files.
var ErrNoSupportedFiles = errors.New("bulk: no supported audio files found")

// Discover lists the supported audio files directly under dir, sorted by
// name. It does not recurse.
func Discover(dir string, registry *audio.Registry) ([]string, error) {
	if registry == nil {
		registry = audio.DefaultRegistry()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if registry.Supported(filepath.Ext(entry.Name())) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSupportedFiles, dir)
	}

	sort.Strings(files)
	return files, nil
}

// Expand returns the work list for a path: the file itself, or every
// supported file when the path is a directory.
func Expand(path string, registry *audio.Registry) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return Discover(path, registry)
	}
	return []string{path}, nil
}
