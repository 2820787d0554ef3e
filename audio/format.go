// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ContainerFormat identifies the byte-level container of an audio file.
type ContainerFormat int

const (
	WAV ContainerFormat = iota + 1
	FLAC
	OGG
	AIFF
	MP3
)

func (f ContainerFormat) String() string {
	switch f {
	case WAV:
		return "wav"
	case FLAC:
		return "flac"
	case OGG:
		return "ogg"
	case AIFF:
		return "aiff"
	case MP3:
		return "mp3"
	default:
		return fmt.Sprintf("container(%d)", int(f))
	}
}

// Container flags occupy the TypeMask bits of a format code.
const (
	FormatWAV  = 0x010000
	FormatAIFF = 0x020000
	FormatFLAC = 0x170000
	FormatOGG  = 0x200000
	FormatMPEG = 0x230000
)

// Subformat flags occupy the SubMask bits of a format code.
const (
	SubformatPCMS8  = 0x0001
	SubformatPCM16  = 0x0002
	SubformatPCM24  = 0x0003
	SubformatPCM32  = 0x0004
	SubformatPCMU8  = 0x0005
	SubformatFloat  = 0x0006
	SubformatDouble = 0x0007
	SubformatVorbis = 0x0060
)

const (
	SubMask  = 0x0000FFFF
	TypeMask = 0x0FFF0000
)

// ContainerToFormatFlag returns the container flag passed to a codec on open.
func ContainerToFormatFlag(f ContainerFormat) (int, error) {
	switch f {
	case WAV:
		return FormatWAV, nil
	case FLAC:
		return FormatFLAC, nil
	case OGG:
		return FormatOGG, nil
	case AIFF:
		return FormatAIFF, nil
	case MP3:
		return FormatMPEG, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownContainer, f)
	}
}

// FormatFlagToContainer is the inverse of ContainerToFormatFlag. Subformat
// bits in code are ignored.
func FormatFlagToContainer(code int) (ContainerFormat, error) {
	switch code & TypeMask {
	case FormatWAV:
		return WAV, nil
	case FormatFLAC:
		return FLAC, nil
	case FormatOGG:
		return OGG, nil
	case FormatAIFF:
		return AIFF, nil
	case FormatMPEG:
		return MP3, nil
	default:
		return 0, fmt.Errorf("%w: format 0x%08x", ErrUnknownContainer, code)
	}
}

// SubformatName returns a short human readable name for the subformat bits
// of code.
func SubformatName(code int) string {
	switch code & SubMask {
	case SubformatPCMS8:
		return "pcm_s8"
	case SubformatPCM16:
		return "pcm_16"
	case SubformatPCM24:
		return "pcm_24"
	case SubformatPCM32:
		return "pcm_32"
	case SubformatPCMU8:
		return "pcm_u8"
	case SubformatFloat:
		return "float"
	case SubformatDouble:
		return "double"
	case SubformatVorbis:
		return "vorbis"
	default:
		return fmt.Sprintf("0x%04x", code&SubMask)
	}
}
