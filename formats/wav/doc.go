// SPDX-License-Identifier: EPL-2.0

// Package wav provides the WAV codec backend.
//
// Headers are parsed with github.com/go-audio/wav; sample data is decoded
// straight from the data chunk so every sample type survives without a
// detour through int.
//
// # Supported Formats
//
// Reading:
//   - PCM unsigned 8-bit, delivered as int16
//   - PCM 16-bit, delivered as int16
//   - PCM 24-bit, left-justified into int32
//   - PCM 32-bit, delivered as int32
//   - IEEE float 32 and 64-bit
//
// Writing: PCM 16, PCM 32, float and double.
//
// # Usage
//
// The codec is normally reached through an audio.Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Entry())
//
//	src, err := reg.OpenSource("input.wav")
//
// Handles returned by Codec.Open implement audio.FrameReader[T] or
// audio.FrameWriter[T] for the sample type mapped from the subformat.
//
// # Error Handling
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrPCMChunkNotFound: the file has no data chunk
//   - ErrUnsupportedWavFormat: the fmt chunk describes an encoding that
//     cannot be read
//   - ErrUnsupportedSubformat: the requested subformat cannot be written
package wav
