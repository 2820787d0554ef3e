// SPDX-License-Identifier: EPL-2.0

// Package flac provides the FLAC codec backend on top of
// github.com/mewkiz/flac.
//
// Streams of 4 to 32 bits per sample are read. Depths up to 16 bits are
// left-justified into int16, wider depths into int32. A stream whose
// STREAMINFO carries no sample count reports zero frames, which callers
// treat as unknown length.
//
// Writing is limited to 16-bit PCM. Frames are buffered into fixed blocks
// of 4096 and stored verbatim; the final partial block is written when the
// handle is closed.
package flac
