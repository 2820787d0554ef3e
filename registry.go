// SPDX-License-Identifier: EPL-2.0

package sndstream

import (
	"sync"

	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/formats/aiff"
	"github.com/ik5/sndstream/formats/flac"
	"github.com/ik5/sndstream/formats/mp3"
	"github.com/ik5/sndstream/formats/vorbis"
	"github.com/ik5/sndstream/formats/wav"
)

var defaultRegistry = sync.OnceValue(NewRegistry)

// NewRegistry returns a registry with every bundled codec registered.
// MP3 is registered last since its frame sync is the weakest signature.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Entry())
	reg.Register(flac.Entry())
	reg.Register(vorbis.Entry())
	reg.Register(aiff.Entry())
	reg.Register(mp3.Entry())

	return reg
}

// DefaultRegistry returns the registry shared by the package level
// functions. It is created on first use.
func DefaultRegistry() *audio.Registry {
	return defaultRegistry()
}

// Identify reports the container of the file at path, by signature first and
// by extension when no signature matches.
func Identify(path string) (audio.ContainerFormat, bool) {
	return DefaultRegistry().IdentifyFile(path)
}

// OpenSource opens path for streaming reads.
func OpenSource(path string) (*audio.Source, error) {
	return DefaultRegistry().OpenSource(path)
}

// OpenSink creates path for streaming writes. The container is chosen by
// extension.
func OpenSink(path string, channels, sampleRate int, st audio.SampleType) (*audio.Sink, error) {
	return DefaultRegistry().OpenSink(path, channels, sampleRate, st)
}
