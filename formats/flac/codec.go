// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sndstream/audio"
)

var (
	// ErrBitDepth is returned when a FLAC stream has an unsupported bit depth.
	ErrBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrReadFailure is returned when reading from the FLAC stream fails.
	ErrReadFailure = errors.New("FLAC read failure")

	// ErrUnsupportedSubformat is returned when a sink asks for anything but
	// 16-bit PCM.
	ErrUnsupportedSubformat = errors.New("unsupported FLAC subformat for writing")

	ErrUnsupportedMode = errors.New("unsupported open mode")
)

// Extensions lists the file extensions of FLAC files.
var Extensions = []string{".flac"}

var magic = []byte("fLaC")

// Detect reports whether r starts with the "fLaC" stream marker.
func Detect(r io.Reader) bool {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}

	return bytes.Equal(head[:], magic)
}

// Codec opens FLAC files for reading and 16-bit writing.
type Codec struct{}

func (Codec) Open(path string, mode audio.Mode, info *audio.Info) (audio.Handle, error) {
	switch mode {
	case audio.ModeRead:
		return openReader(path, info)
	case audio.ModeWrite:
		return openWriter(path, info)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
}

// Entry returns the registry entry for FLAC.
func Entry() audio.Entry {
	return audio.Entry{
		Format:     audio.FLAC,
		Detect:     Detect,
		Extensions: Extensions,
		Codec:      Codec{},
	}
}

// subformat maps a FLAC bit depth to the subformat it is reported as.
func subformat(depth int) (int, error) {
	switch depth {
	case 4, 8:
		return audio.SubformatPCMS8, nil
	case 12, 16:
		return audio.SubformatPCM16, nil
	case 20, 24:
		return audio.SubformatPCM24, nil
	case 32:
		return audio.SubformatPCM32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}
}
