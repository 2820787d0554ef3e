// SPDX-License-Identifier: EPL-2.0

//go:build !vorbisenc

package vorbis

// EncoderAvailable reports whether this build can write Ogg Vorbis.
const EncoderAvailable = false

func newEncoder(int, int, float32) (encoder, error) {
	return nil, ErrWriteUnsupported
}
