// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Source is a file opened for decoding. It is not safe for concurrent use.
type Source struct {
	path        string
	handle      Handle
	info        Info
	sampleType  SampleType
	pos         int64
	chunkFrames int
	scratch     any
	closed      bool
}

// OpenSource opens the file at path through the codec registered for its
// container.
func (r *Registry) OpenSource(path string) (*Source, error) {
	format, ok := r.IdentifyFile(path)
	if !ok {
		return nil, &OpenError{Path: path, Message: ErrUnknownContainer.Error(), Err: ErrUnknownContainer}
	}

	e, _ := r.Get(format)
	return OpenSource(e.Codec, path, r.ChunkFrames())
}

// OpenSource opens path for reading with codec. chunkFrames is the number of
// frames decoded per codec call.
func OpenSource(codec Codec, path string, chunkFrames int) (*Source, error) {
	if chunkFrames < 1 {
		chunkFrames = DefaultChunkFrames
	}

	var info Info
	h, err := codec.Open(path, ModeRead, &info)
	if err != nil {
		return nil, &OpenError{Path: path, Message: err.Error(), Err: err}
	}
	if h == nil {
		return nil, &OpenError{Path: path, Message: "codec returned no handle"}
	}

	st, err := NativeEncodingToSampleType(info.Format)
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := info.validate(); err != nil {
		_ = h.Close()
		return nil, &OpenError{Path: path, Message: err.Error(), Err: err}
	}

	return &Source{
		path:        path,
		handle:      h,
		info:        info,
		sampleType:  st,
		pos:         1,
		chunkFrames: chunkFrames,
		scratch:     newScratch(st, info.Channels*chunkFrames),
	}, nil
}

func (s *Source) Path() string           { return s.path }
func (s *Source) Info() Info             { return s.info }
func (s *Source) SampleType() SampleType { return s.sampleType }
func (s *Source) ChunkFrames() int       { return s.chunkFrames }

// Position is the 1-based index of the next frame to be read.
func (s *Source) Position() int64 { return s.pos }

// Close releases the codec handle. Calling it again returns ErrClosed.
func (s *Source) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	if err := s.handle.Close(); err != nil {
		return &CloseError{Path: s.path, Err: err}
	}

	return nil
}

// ReadFrames decodes up to count frames into dst starting at frame offset
// and returns the number of frames read. count is clamped to the frames left
// in the stream when its length is known. Reading stops at the first call
// where the codec returns fewer frames than asked for; that is the normal
// end-of-stream signal and not an error.
func ReadFrames[T Sample](s *Source, dst *Buffer[T], offset, count int) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	scratch, ok := s.scratch.([]T)
	if !ok {
		return 0, fmt.Errorf("%w: stream is %v, buffer is %v", ErrSampleTypeMismatch, s.sampleType, SampleTypeOf[T]())
	}
	reader, ok := s.handle.(FrameReader[T])
	if !ok {
		return 0, fmt.Errorf("%w: codec cannot decode %v", ErrSampleTypeMismatch, SampleTypeOf[T]())
	}

	if s.info.Frames > 0 {
		remaining := max(s.info.Frames-s.pos+1, 0)
		if int64(count) > remaining {
			count = int(remaining)
		}
	}

	channels := s.info.Channels
	if offset < 0 || count < 0 || dst.NumChannels() != channels || offset+count > dst.NumFrames() {
		return 0, fmt.Errorf("%w: %d channels x %d frames, need %d channels and %d frames",
			ErrBufferShape, dst.NumChannels(), dst.NumFrames(), channels, offset+count)
	}

	read := 0
	for read < count {
		want := min(s.chunkFrames, count-read)

		got, err := reader.ReadFrames(scratch[:want*channels])
		got = min(max(got, 0), want)
		if got > 0 {
			Deinterleave(dst.Data, offset+read, scratch, got)
		}
		read += got
		s.pos += int64(got)

		if err != nil && !errors.Is(err, io.EOF) {
			return read, fmt.Errorf("read %s: %w", s.path, err)
		}
		if got < want {
			break
		}
	}

	return read, nil
}

func newScratch(st SampleType, n int) any {
	switch st {
	case Int16:
		return make([]int16, n)
	case Int32:
		return make([]int32, n)
	case Float32:
		return make([]float32, n)
	default:
		return make([]float64, n)
	}
}
