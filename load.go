// SPDX-License-Identifier: EPL-2.0

package sndstream

import (
	"errors"
	"fmt"

	"github.com/ik5/sndstream/audio"
)

// Load reads the whole file at path into a buffer of the sample type the
// file decodes to.
func Load(path string) (audio.AnyBuffer, error) {
	return LoadWith(DefaultRegistry(), path)
}

// LoadWith is Load with an explicit registry.
func LoadWith(reg *audio.Registry, path string) (buf audio.AnyBuffer, err error) {
	src, err := reg.OpenSource(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		if cerr := src.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if err != nil {
			buf = nil
		}
	}()

	switch st := src.SampleType(); st {
	case audio.Int16:
		return readAny[int16](src)
	case audio.Int32:
		return readAny[int32](src)
	case audio.Float32:
		return readAny[float32](src)
	case audio.Float64:
		return readAny[float64](src)
	default:
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedSampleType, st)
	}
}

// LoadInfo opens path only to report its descriptor.
func LoadInfo(path string) (audio.Info, error) {
	src, err := OpenSource(path)
	if err != nil {
		return audio.Info{}, err
	}

	info := src.Info()
	if err := src.Close(); err != nil {
		return audio.Info{}, err
	}

	return info, nil
}

// ReadAll reads src from its current position to the end of the stream.
// T must match src.SampleType().
func ReadAll[T audio.Sample](src *audio.Source) (*audio.Buffer[T], error) {
	info := src.Info()
	step := max(src.ChunkFrames(), 1)
	buf := audio.NewBuffer[T](info.Channels, 0, info.SampleRate)

	// Reserve the known length up front.
	if info.Frames > 0 {
		remaining := max(info.Frames-src.Position()+1, 0)
		buf.Resize(int(remaining))
		buf.Resize(0)
	}

	filled := 0
	for {
		buf.Resize(filled + step)

		n, err := audio.ReadFrames(src, buf, filled, step)
		filled += n
		if err != nil {
			return nil, err
		}
		if n < step {
			break
		}
	}

	buf.Resize(filled)

	return buf, nil
}

func readAny[T audio.Sample](src *audio.Source) (audio.AnyBuffer, error) {
	buf, err := ReadAll[T](src)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
