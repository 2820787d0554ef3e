// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides the MP3 codec backend.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// The decoder always produces 16-bit stereo, so every MP3 source reports
// two channels and the 16-bit PCM subformat regardless of the channel mode
// stored in the file. Mono files are duplicated into both channels.
//
// MP3 encoding is not supported.
package mp3
