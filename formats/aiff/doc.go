// SPDX-License-Identifier: EPL-2.0

// Package aiff provides the AIFF (Audio Interchange File Format) codec backend.
//
// This package uses github.com/go-audio/aiff for both directions. AIFF is
// Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Reading:
//   - PCM 8 and 16-bit, delivered as int16
//   - PCM 24 and 32-bit, left-justified into int32
//
// Writing: PCM 16 and 32-bit. Float data has no AIFF encoding here and is
// refused when the handle is opened.
package aiff
