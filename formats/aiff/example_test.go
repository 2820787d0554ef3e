// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/formats/aiff"
)

// Example writes 16-bit AIFF and reads it back.
func Example() {
	dir, err := os.MkdirTemp("", "aiff")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	reg := audio.NewRegistry()
	reg.Register(aiff.Entry())

	path := filepath.Join(dir, "pulse.aif")

	sink, err := reg.OpenSink(path, 2, 22050, audio.Int16)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := &audio.Buffer[int16]{SampleRate: 22050, Data: [][]int16{{1, 2, 3}, {-1, -2, -3}}}
	if _, err := audio.WriteFrames(sink, buf, 0, 3); err != nil {
		fmt.Println(err)
		return
	}
	if err := sink.Close(); err != nil {
		fmt.Println(err)
		return
	}

	src, err := reg.OpenSource(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	out := audio.NewBuffer[int16](2, 3, 22050)
	if _, err := audio.ReadFrames(src, out, 0, 3); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(src.Info().Channels, src.Info().Frames, out.Data)
	// Output: 2 3 [[1 2 3] [-1 -2 -3]]
}
