// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides the Ogg Vorbis codec backend.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Samples are delivered as float32 and the format code always carries the
// Vorbis subformat.
//
// # Encoding
//
// Writing goes through libvorbisenc and libogg with cgo, found by
// pkg-config, and is compiled in with the vorbisenc build tag:
//
//	go build -tags vorbisenc ./...
//
// Without the tag, opening a handle in write mode fails with
// ErrWriteUnsupported and EncoderAvailable is false. Write handles take
// int16, int32, float32 or float64 frames through OpenStaged and encode in
// VBR mode at quality 0.4.
//
// # Channel Layout
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
package vorbis
