// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/sndstream/audio"
)

var (
	// ErrNotOggFile indicates the input does not start with an Ogg page.
	ErrNotOggFile = errors.New("not an Ogg file")

	// ErrWriteUnsupported is returned for write mode when the package was
	// built without the vorbisenc tag.
	ErrWriteUnsupported = errors.New("writing Ogg Vorbis requires the vorbisenc build tag")

	// ErrEncoderSetup indicates libvorbisenc refused the channel count or
	// sample rate.
	ErrEncoderSetup = errors.New("vorbis encoder setup failed")

	ErrUnsupportedSubformat = errors.New("unsupported subformat")
	ErrUnsupportedMode      = errors.New("unsupported open mode")
)

// Extensions lists the file extensions of Ogg Vorbis files.
var Extensions = []string{".ogg", ".oga"}

var capturePattern = []byte("OggS")

// Detect reports whether r starts with an Ogg page capture pattern.
func Detect(r io.Reader) bool {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}

	return bytes.Equal(head[:], capturePattern)
}

// Codec opens Ogg Vorbis files. Write handles encode float32 frames
// unless opened through OpenStaged.
type Codec struct{}

var _ audio.StagedCodec = Codec{}

func (c Codec) Open(path string, mode audio.Mode, info *audio.Info) (audio.Handle, error) {
	switch mode {
	case audio.ModeRead:
		return openReader(path, info)
	case audio.ModeWrite:
		return c.OpenStaged(path, info, audio.Float32)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
}

// Entry returns the registry entry for Ogg Vorbis.
func Entry() audio.Entry {
	return audio.Entry{
		Format:     audio.OGG,
		Detect:     Detect,
		Extensions: Extensions,
		Codec:      Codec{},
	}
}

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	closer   io.Closer
	channels int
}

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

// ReadFrames fills dst with whole frames. oggvorbis hands out at most one
// decoded packet per Read, so it is called until dst is full.
func (s *source) ReadFrames(dst []float32) (int, error) {
	want := (len(dst) / s.channels) * s.channels
	n := 0

	for n < want {
		m, err := s.dec.Read(dst[n:want])
		n += m

		if errors.Is(err, io.EOF) {
			return n / s.channels, io.EOF
		}
		if err != nil {
			return n / s.channels, fmt.Errorf("%w", err)
		}
		if m == 0 {
			return n / s.channels, io.EOF
		}
	}

	return n / s.channels, nil
}

func openReader(path string, info *audio.Info) (audio.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !Detect(f) {
		_ = f.Close()

		return nil, ErrNotOggFile
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("%w", err)
	}

	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("%w", err)
	}

	*info = audio.Info{
		Frames:     dec.Length(),
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
		Format:     audio.FormatOGG | audio.SubformatVorbis,
		Sections:   1,
		Seekable:   true,
	}

	return &source{dec: dec, closer: f, channels: dec.Channels()}, nil
}
