// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming core of sndstream.
//
// This package contains the building blocks every codec backend plugs into:
//   - Codec, Handle, FrameReader and FrameWriter, the backend contract
//   - Source and Sink, chunked streams over a codec handle
//   - Buffer, a planar sample buffer generic over the sample type
//   - Registry, mapping containers to codecs, signatures and extensions
//
// # Sample Types
//
// Samples are stored as one of four Go types:
//
//	int16   Int16
//	int32   Int32
//	float32 Float32
//	float64 Float64
//
// A codec reports its on-disk encoding as a format code: a container flag
// OR'd with a subformat flag. NativeEncodingToSampleType picks the type a
// stream is decoded into. The mapping narrows, so 8-bit files decode to
// int16 and 24-bit files to int32, left justified.
//
// # Streams
//
// A Source reads frames from a codec in chunks of ChunkFrames and
// transposes them into a planar Buffer:
//
//	src, err := registry.OpenSource("in.wav")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := audio.NewBuffer[int16](src.Info().Channels, 4096, src.Info().SampleRate)
//	n, err := audio.ReadFrames(src, buf, 0, 4096)
//
// Reading stops at the first short chunk. A short count is the normal end of
// stream; io.EOF from a codec is never returned to the caller.
//
// A Sink does the reverse. Its Info reports the frame total only after a
// successful Close:
//
//	sink, err := registry.OpenSink("out.flac", 2, 44100, audio.Int16)
//	n, err := audio.WriteFrames(sink, buf, 0, buf.NumFrames())
//	err = sink.Close()
//
// # Errors
//
// Codec failures on open are returned as *OpenError and failures on release
// as *CloseError. Unknown subformat codes produce *UnrecognizedFormatError.
// Buffer misuse is reported with ErrSampleTypeMismatch or ErrBufferShape
// before any codec call is made.
package audio
