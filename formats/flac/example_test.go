// SPDX-License-Identifier: EPL-2.0

package flac_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/formats/flac"
)

// Example shows that FLAC sinks only take int16 samples.
func Example() {
	dir, err := os.MkdirTemp("", "flac")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	reg := audio.NewRegistry()
	reg.Register(flac.Entry())

	_, err = reg.OpenSink(filepath.Join(dir, "a.flac"), 2, 48000, audio.Float32)
	fmt.Println(errors.Is(err, audio.ErrUnsupportedSampleType))

	sink, err := reg.OpenSink(filepath.Join(dir, "b.flac"), 2, 48000, audio.Int16)
	if err != nil {
		fmt.Println(err)
		return
	}

	if _, err := audio.WriteFrames(sink, audio.NewBuffer[int16](2, 10000, 48000), 0, 10000); err != nil {
		fmt.Println(err)
		return
	}
	if err := sink.Close(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(sink.Info())
	// Output:
	// true
	// flac/pcm_16 48000 Hz, 2 ch, 10000 frames
}
