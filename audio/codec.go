// SPDX-License-Identifier: EPL-2.0

package audio

// Mode selects whether a codec handle is opened for decoding or encoding.
type Mode int

const (
	ModeRead Mode = iota + 1
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return "invalid"
	}
}

// Codec opens files of one container format.
//
// In ModeRead, Open fills info from the file header. In ModeWrite, info
// carries the channel count, sample rate and format code to encode with;
// the codec must reject an unsupported descriptor before creating the file.
type Codec interface {
	Open(path string, mode Mode, info *Info) (Handle, error)
}

// StagedCodec is implemented by codecs whose stored encoding does not fix
// the in-memory sample type, such as lossy codecs. OpenSink opens write
// handles through OpenStaged so the handle implements FrameWriter[T] for
// the Go type of st instead of the type the format code maps to.
type StagedCodec interface {
	Codec
	OpenStaged(path string, info *Info, st SampleType) (Handle, error)
}

// Handle is an open codec resource. Close must be called exactly once.
//
// A handle opened for reading also implements FrameReader[T] and a handle
// opened for writing implements FrameWriter[T], where T is the Go type for
// the SampleType derived from the handle's format code, or for the staging
// type passed to StagedCodec.OpenStaged.
type Handle interface {
	Close() error
}

// FrameReader decodes interleaved frames. dst holds a whole number of
// frames; the return value counts frames. Fewer frames than requested means
// the stream is exhausted, err is then nil or io.EOF.
type FrameReader[T Sample] interface {
	Handle
	ReadFrames(dst []T) (int, error)
}

// FrameWriter encodes interleaved frames. src holds a whole number of
// frames; the return value counts the frames the codec accepted.
type FrameWriter[T Sample] interface {
	Handle
	WriteFrames(src []T) (int, error)
}

// CodecFunc adapts a function to the Codec interface.
type CodecFunc func(path string, mode Mode, info *Info) (Handle, error)

func (f CodecFunc) Open(path string, mode Mode, info *Info) (Handle, error) {
	return f(path, mode, info)
}
