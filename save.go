// SPDX-License-Identifier: EPL-2.0

package sndstream

import (
	"errors"
	"fmt"

	"github.com/ik5/sndstream/audio"
)

// Save writes every frame of buf to path. The container is chosen by
// extension and the sample type by buf.
//
// A codec that accepts fewer frames than buf holds yields an
// *audio.IncompleteWriteError. The file is closed on every path.
func Save(path string, buf audio.AnyBuffer) error {
	return SaveWith(DefaultRegistry(), path, buf)
}

// SaveWith is Save with an explicit registry.
func SaveWith(reg *audio.Registry, path string, buf audio.AnyBuffer) (err error) {
	if buf == nil {
		return fmt.Errorf("save %s: %w: nil buffer", path, audio.ErrInvalidDescriptor)
	}

	sink, err := reg.OpenSink(path, buf.NumChannels(), buf.Rate(), buf.SampleType())
	if err != nil {
		return err
	}

	defer func() {
		if cerr := sink.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	var written int

	switch b := buf.(type) {
	case *audio.Buffer[int16]:
		written, err = audio.WriteFrames(sink, b, 0, b.NumFrames())
	case *audio.Buffer[int32]:
		written, err = audio.WriteFrames(sink, b, 0, b.NumFrames())
	case *audio.Buffer[float32]:
		written, err = audio.WriteFrames(sink, b, 0, b.NumFrames())
	case *audio.Buffer[float64]:
		written, err = audio.WriteFrames(sink, b, 0, b.NumFrames())
	default:
		return fmt.Errorf("save %s: %w: %T", path, audio.ErrUnsupportedSampleType, buf)
	}

	if err != nil {
		return err
	}

	if expected := buf.NumFrames(); written != expected {
		return &audio.IncompleteWriteError{Written: int64(written), Expected: int64(expected)}
	}

	return nil
}
