// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/sndstream/audio"
)

// Extensions lists the file extensions of AIFF files.
var Extensions = []string{".aiff", ".aif", ".aifc"}

// Detect reports whether r starts with an IFF FORM of type AIFF or AIFC.
func Detect(r io.Reader) bool {
	var head [12]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}

	if !bytes.Equal(head[0:4], []byte("FORM")) {
		return false
	}

	form := head[8:12]

	return bytes.Equal(form, []byte("AIFF")) || bytes.Equal(form, []byte("AIFC"))
}

// Codec opens AIFF files for reading and writing.
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

// Entry returns the registry entry for AIFF.
func Entry() audio.Entry {
	return audio.Entry{
		Format:     audio.AIFF,
		Detect:     Detect,
		Extensions: Extensions,
		Codec:      Codec{},
	}
}

func subformat(bitDepth int) (int, error) {
	switch bitDepth {
	case 8:
		return audio.SubformatPCMS8, nil
	case 16:
		return audio.SubformatPCM16, nil
	case 24:
		return audio.SubformatPCM24, nil
	case 32:
		return audio.SubformatPCM32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}
