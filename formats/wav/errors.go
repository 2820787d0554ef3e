// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrPCMChunkNotFound     = errors.New("WAV data chunk not found")
	ErrUnsupportedWavFormat = errors.New("unsupported WAV sample format")
	ErrUnsupportedSubformat = errors.New("unsupported WAV subformat for writing")
	ErrUnsupportedMode      = errors.New("unsupported open mode")
)
