// SPDX-License-Identifier: EPL-2.0

// Package sndstream loads and saves whole audio files through a streaming
// codec layer.
//
// This package offers convenient functions for the common case of reading a
// file into memory or writing a buffer out. Everything is built on the audio
// subpackage, which can be used directly for chunked streaming.
//
// # Supported Formats
//
//   - WAV (PCM 8/16/24/32-bit, IEEE float 32/64-bit) via formats/wav
//   - FLAC (read any depth, write 16-bit) via formats/flac
//   - AIFF (PCM 8/16/24/32-bit, write 16/32-bit) via formats/aiff
//   - Ogg Vorbis (write with the vorbisenc build tag) via formats/vorbis
//   - MP3 (read only) via formats/mp3
//
// # Quick Start
//
//	buf, err := sndstream.Load("in.flac")
//	if err != nil {
//	    return err
//	}
//
//	// buf keeps the sample type the file decodes to.
//	err = sndstream.Save("out.wav", buf)
//
// The element type of a loaded buffer follows the file's encoding: 8 and
// 16-bit PCM load as int16, 24 and 32-bit PCM as int32, float and Vorbis as
// float32 and double as float64. Use a type switch or ReadAll to get a
// concrete *audio.Buffer[T]:
//
//	src, _ := sndstream.OpenSource("in.wav")
//	defer src.Close()
//
//	if src.SampleType() == audio.Int16 {
//	    pcm, err := sndstream.ReadAll[int16](src)
//	}
//
// # Registries
//
// Load, Save and the other package level functions use DefaultRegistry.
// Tools that need different codecs or chunk sizes build their own with
// NewRegistry and call LoadWith and SaveWith.
package sndstream
