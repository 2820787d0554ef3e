// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultChunkFrames is the scratch capacity, in frames, of streams opened
// through a new Registry.
const DefaultChunkFrames = 4096

// Detector reports whether r starts with a container's signature. A short
// read is a negative answer.
type Detector func(r io.Reader) bool

// Entry binds a container format to its detector, file extensions and codec.
type Entry struct {
	Format     ContainerFormat
	Detect     Detector
	Extensions []string
	Codec      Codec
}

// Registry of codecs by container format.
type Registry struct {
	entries     map[ContainerFormat]Entry
	order       []ContainerFormat
	exts        map[string]ContainerFormat
	chunkFrames int

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		entries:     make(map[ContainerFormat]Entry),
		exts:        make(map[string]ContainerFormat),
		chunkFrames: DefaultChunkFrames,
		mtx:         &sync.Mutex{},
	}
}

// Register adds e, replacing any entry for the same format together with the
// extension bindings it owned.
func (r *Registry) Register(e Entry) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.entries[e.Format]; ok {
		for ext, f := range r.exts {
			if f == e.Format {
				delete(r.exts, ext)
			}
		}
	} else {
		r.order = append(r.order, e.Format)
	}

	for _, ext := range e.Extensions {
		r.exts[normalizeExt(ext)] = e.Format
	}
	r.entries[e.Format] = e
}

func (r *Registry) Get(format ContainerFormat) (Entry, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.entries[format]
	return e, ok
}

// Formats lists registered formats in registration order.
func (r *Registry) Formats() []ContainerFormat {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]ContainerFormat, len(r.order))
	copy(out, r.order)
	return out
}

// SetChunkFrames sets the scratch capacity of streams opened afterwards.
// Values below 1 restore DefaultChunkFrames.
func (r *Registry) SetChunkFrames(n int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if n < 1 {
		n = DefaultChunkFrames
	}
	r.chunkFrames = n
}

func (r *Registry) ChunkFrames() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.chunkFrames
}

// Identify runs every detector against rs from its start, in registration
// order, and returns the first format that matches.
func (r *Registry) Identify(rs io.ReadSeeker) (ContainerFormat, bool) {
	for _, e := range r.snapshot() {
		if e.Detect == nil {
			continue
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, false
		}
		if e.Detect(rs) {
			return e.Format, true
		}
	}

	return 0, false
}

// IdentifyExt matches the extension of path, ignoring case.
func (r *Registry) IdentifyExt(path string) (ContainerFormat, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, false
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.exts[normalizeExt(ext)]
	return f, ok
}

// IdentifyFile sniffs the file at path and falls back to its extension when
// no signature matches or the file cannot be read.
func (r *Registry) IdentifyFile(path string) (ContainerFormat, bool) {
	if f, err := os.Open(path); err == nil {
		format, ok := r.Identify(f)
		_ = f.Close()
		if ok {
			return format, true
		}
	}

	return r.IdentifyExt(path)
}

func (r *Registry) snapshot() []Entry {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]Entry, 0, len(r.order))
	for _, f := range r.order {
		out = append(out, r.entries[f])
	}
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
