// Package audio provides decoding, slicing, and encoding of audio clips.
package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Decoder reads a complete audio stream into an in-memory clip.
// Decoded samples are normalized to interleaved 16-bit PCM.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Clip, error)
}

// Loader reads complete clips from disk, picking a decoder by file extension.
type Loader interface {
	Load(path string) (*Clip, error)
}

// Exporter encodes a clip into its destination format.
// The bitrate applies to compressed targets only.
type Exporter interface {
	Export(ctx context.Context, clip *Clip, dest string, format Format, bitrate string) error
}

// Registry maps file extensions (without the dot) to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx sync.Mutex
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

// Register adds a decoder for the given extension. Later registrations
// for the same extension win.
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Lookup returns the decoder registered for the extension, if any.
func (r *Registry) Lookup(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Supported reports whether a decoder is registered for the extension.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.Lookup(ext)
	return ok
}

// DefaultRegistry returns a registry with decoders for every supported
// source format. The "aif" alias maps to the AIFF decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAVDecoder{})
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})
	r.Register("flac", FLACDecoder{})
	r.Register("aiff", AIFFDecoder{})
	r.Register("aif", AIFFDecoder{})
	return r
}

// normalizeExt lowercases an extension and strips a leading dot.
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FileLoader implements Loader on top of a decoder registry.
type FileLoader struct {
	registry *Registry
}

// NewFileLoader creates a FileLoader. A nil registry defaults to
// DefaultRegistry().
func NewFileLoader(registry *Registry) *FileLoader {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &FileLoader{registry: registry}
}

// Load decodes the file at path into a clip.
func (l *FileLoader) Load(path string) (*Clip, error) {
	ext := filepath.Ext(path)
	dec, ok := l.registry.Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.TrimPrefix(ext, "."))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	clip, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return clip, nil
}

// Verify interface implementation at compile time.
var _ Loader = (*FileLoader)(nil)
