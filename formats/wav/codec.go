// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/sndstream/audio"
)

// WAVE format tags from the fmt chunk.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Extensions lists the file extensions of WAV files.
var Extensions = []string{".wav", ".wave"}

// Detect reports whether r starts with a RIFF/WAVE header: "RIFF" at offset
// 0 and "WAVE" at offset 8.
func Detect(r io.Reader) bool {
	var head [12]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}

	return bytes.Equal(head[0:4], riff.RiffID[:]) && bytes.Equal(head[8:12], riff.WavFormatID[:])
}

// Codec opens WAV files for reading and writing.
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

// Entry returns the registry entry for WAV.
func Entry() audio.Entry {
	return audio.Entry{
		Format:     audio.WAV,
		Detect:     Detect,
		Extensions: Extensions,
		Codec:      Codec{},
	}
}

// subformat maps a fmt chunk's format tag and bit depth to a subformat flag.
// Extensible files are treated as integer PCM.
func subformat(tag, bitDepth uint16) (int, error) {
	switch tag {
	case formatPCM, formatExtensible:
		switch bitDepth {
		case 8:
			return audio.SubformatPCMU8, nil
		case 16:
			return audio.SubformatPCM16, nil
		case 24:
			return audio.SubformatPCM24, nil
		case 32:
			return audio.SubformatPCM32, nil
		}
	case formatIEEEFloat:
		switch bitDepth {
		case 32:
			return audio.SubformatFloat, nil
		case 64:
			return audio.SubformatDouble, nil
		}
	}

	return 0, fmt.Errorf("%w: tag %d, %d bits", ErrUnsupportedWavFormat, tag, bitDepth)
}

// fmtTag returns the fmt chunk tag and bit depth that store sub.
func fmtTag(sub int) (tag, bitDepth int, err error) {
	switch sub {
	case audio.SubformatPCM16:
		return formatPCM, 16, nil
	case audio.SubformatPCM32:
		return formatPCM, 32, nil
	case audio.SubformatFloat:
		return formatIEEEFloat, 32, nil
	case audio.SubformatDouble:
		return formatIEEEFloat, 64, nil
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedSubformat, audio.SubformatName(sub))
	}
}
