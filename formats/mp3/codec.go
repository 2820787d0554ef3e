// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/sndstream/audio"
)

// go-mp3 always decodes to interleaved 16-bit little-endian stereo.
const (
	outputChannels = 2
	bytesPerFrame  = outputChannels * 2
)

var (
	// ErrNotMP3File indicates the input has neither an ID3 tag nor an MPEG
	// audio frame sync at its start.
	ErrNotMP3File = errors.New("not an MP3 file")

	// ErrWriteUnsupported is returned for write mode; no MP3 encoder is
	// available.
	ErrWriteUnsupported = errors.New("writing MP3 is not supported")

	ErrUnsupportedMode = errors.New("unsupported open mode")
)

// Extensions lists the file extensions of MP3 files.
var Extensions = []string{".mp3"}

// Detect reports whether r starts with an ID3v2 tag or an MPEG audio frame
// sync word.
func Detect(r io.Reader) bool {
	var head [3]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}

	if string(head[:]) == "ID3" {
		return true
	}

	return head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

// Codec opens MP3 files for reading.
type Codec struct{}

func (Codec) Open(path string, mode audio.Mode, info *audio.Info) (audio.Handle, error) {
	switch mode {
	case audio.ModeRead:
		return openReader(path, info)
	case audio.ModeWrite:
		return nil, ErrWriteUnsupported
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
}

// Entry returns the registry entry for MP3.
func Entry() audio.Entry {
	return audio.Entry{
		Format:     audio.MP3,
		Detect:     Detect,
		Extensions: Extensions,
		Codec:      Codec{},
	}
}

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
}

type source struct {
	dec    mp3Reader
	closer io.Closer
	buf    []byte
}

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *source) ReadFrames(dst []int16) (int, error) {
	frames := len(dst) / outputChannels

	bytesNeeded := frames * bytesPerFrame
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := io.ReadFull(s.dec, s.buf)
	got := n / bytesPerFrame

	for i := range got * outputChannels {
		dst[i] = int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return got, io.EOF
	}
	if err != nil {
		return got, fmt.Errorf("%w", err)
	}

	return got, nil
}

func openReader(path string, info *audio.Info) (audio.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !Detect(f) {
		_ = f.Close()

		return nil, ErrNotMP3File
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("%w", err)
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("%w", err)
	}

	var frames int64
	if length := dec.Length(); length > 0 {
		frames = length / bytesPerFrame
	}

	*info = audio.Info{
		Frames:     frames,
		SampleRate: dec.SampleRate(),
		Channels:   outputChannels,
		Format:     audio.FormatMPEG | audio.SubformatPCM16,
		Sections:   1,
		Seekable:   true,
	}

	return &source{dec: dec, closer: f}, nil
}
