// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Sink is a file opened for encoding. It is not safe for concurrent use.
type Sink struct {
	path        string
	handle      Handle
	info        Info
	sampleType  SampleType
	frames      int64
	chunkFrames int
	scratch     any
	closed      bool
}

// SinkFormatCode returns the format code a sink for container and sample
// type st is opened with. FLAC stores 16-bit samples only and AIFF integer
// samples only; Ogg always stores Vorbis, st then only selects the staging
// type.
func SinkFormatCode(container ContainerFormat, st SampleType) (int, error) {
	flag, err := ContainerToFormatFlag(container)
	if err != nil {
		return 0, err
	}

	sub, err := SampleTypeToSubformatFlag(st)
	if err != nil {
		return 0, err
	}

	switch container {
	case FLAC:
		if st != Int16 {
			return 0, fmt.Errorf("%w: flac accepts int16 only, got %v", ErrUnsupportedSampleType, st)
		}
	case AIFF:
		if st != Int16 && st != Int32 {
			return 0, fmt.Errorf("%w: aiff accepts integer samples only, got %v", ErrUnsupportedSampleType, st)
		}
	case OGG:
		sub = SubformatVorbis
	}

	return flag | sub, nil
}

// OpenSink creates the file at path with the codec registered for its
// extension.
func (r *Registry) OpenSink(path string, channels, sampleRate int, st SampleType) (*Sink, error) {
	format, ok := r.IdentifyExt(path)
	if !ok {
		return nil, &OpenError{Path: path, Message: ErrUnknownContainer.Error(), Err: ErrUnknownContainer}
	}

	e, _ := r.Get(format)
	return OpenSink(e.Codec, format, path, channels, sampleRate, st, r.ChunkFrames())
}

// OpenSink opens path for writing with codec. The sample type and
// descriptor are checked before the codec is asked to create anything. A
// StagedCodec is opened with st as the type its handle accepts.
func OpenSink(codec Codec, container ContainerFormat, path string, channels, sampleRate int, st SampleType, chunkFrames int) (*Sink, error) {
	if chunkFrames < 1 {
		chunkFrames = DefaultChunkFrames
	}

	code, err := SinkFormatCode(container, st)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info := Info{SampleRate: sampleRate, Channels: channels, Format: code}
	if err := info.validate(); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var h Handle
	if sc, ok := codec.(StagedCodec); ok {
		h, err = sc.OpenStaged(path, &info, st)
	} else {
		h, err = codec.Open(path, ModeWrite, &info)
	}
	if err != nil {
		return nil, &OpenError{Path: path, Message: err.Error(), Err: err}
	}
	if h == nil {
		return nil, &OpenError{Path: path, Message: "codec returned no handle"}
	}

	return &Sink{
		path:        path,
		handle:      h,
		info:        info,
		sampleType:  st,
		chunkFrames: chunkFrames,
		scratch:     newScratch(st, channels*chunkFrames),
	}, nil
}

func (s *Sink) Path() string           { return s.path }
func (s *Sink) SampleType() SampleType { return s.sampleType }
func (s *Sink) ChunkFrames() int       { return s.chunkFrames }

// Frames is the number of frames the codec has accepted so far.
func (s *Sink) Frames() int64 { return s.frames }

// Info returns the stream descriptor. Frames is only set once Close has
// succeeded.
func (s *Sink) Info() Info { return s.info }

// Close finalizes the file and releases the codec handle. Calling it again
// returns ErrClosed.
func (s *Sink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	if err := s.handle.Close(); err != nil {
		return &CloseError{Path: s.path, Err: err}
	}
	s.info.Frames = s.frames

	return nil
}

// WriteFrames encodes count frames of src starting at frame offset and
// returns the number of frames the codec accepted. Writing stops at the
// first call where the codec accepts fewer frames than offered.
func WriteFrames[T Sample](s *Sink, src *Buffer[T], offset, count int) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	scratch, ok := s.scratch.([]T)
	if !ok {
		return 0, fmt.Errorf("%w: stream is %v, buffer is %v", ErrSampleTypeMismatch, s.sampleType, SampleTypeOf[T]())
	}
	writer, ok := s.handle.(FrameWriter[T])
	if !ok {
		return 0, fmt.Errorf("%w: codec cannot encode %v", ErrSampleTypeMismatch, SampleTypeOf[T]())
	}

	channels := s.info.Channels
	if offset < 0 || count < 0 || src.NumChannels() != channels || offset+count > src.NumFrames() {
		return 0, fmt.Errorf("%w: %d channels x %d frames, need %d channels and %d frames",
			ErrBufferShape, src.NumChannels(), src.NumFrames(), channels, offset+count)
	}

	written := 0
	for written < count {
		n := min(s.chunkFrames, count-written)
		Interleave(scratch, src.Data, offset+written, n)

		got, err := writer.WriteFrames(scratch[:n*channels])
		got = min(max(got, 0), n)
		written += got
		s.frames += int64(got)

		if err != nil {
			return written, fmt.Errorf("write %s: %w", s.path, err)
		}
		if got < n {
			break
		}
	}

	return written, nil
}

