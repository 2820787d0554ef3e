// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"reflect"
	"testing"

	goaudio "github.com/go-audio/audio"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	buf := NewBuffer[int32](3, 10, 48000)

	if buf.NumChannels() != 3 || buf.NumFrames() != 10 || buf.Rate() != 48000 {
		t.Errorf("shape = %d ch x %d frames @ %d, want 3 x 10 @ 48000", buf.NumChannels(), buf.NumFrames(), buf.Rate())
	}
	if buf.SampleType() != Int32 {
		t.Errorf("SampleType() = %v, want int32", buf.SampleType())
	}

	empty := &Buffer[float32]{}
	if empty.NumFrames() != 0 || empty.NumChannels() != 0 {
		t.Errorf("empty buffer shape = %d x %d, want 0 x 0", empty.NumChannels(), empty.NumFrames())
	}
}

func TestBuffer_Resize(t *testing.T) {
	t.Parallel()

	buf := NewBuffer[int16](2, 2, 8000)
	buf.Data[0][1] = 7
	buf.Data[1][0] = -7

	buf.Resize(100)

	if buf.NumFrames() != 100 {
		t.Fatalf("NumFrames() = %d, want 100", buf.NumFrames())
	}
	if buf.Data[0][1] != 7 || buf.Data[1][0] != -7 {
		t.Errorf("Resize lost existing samples: %v", [][]int16{buf.Data[0][:2], buf.Data[1][:2]})
	}

	buf.Resize(1)
	if buf.NumFrames() != 1 || buf.Data[1][0] != -7 {
		t.Errorf("shrink: frames = %d, first = %d", buf.NumFrames(), buf.Data[1][0])
	}

	// Shrinking keeps capacity so growing back does not reallocate.
	before := &buf.Data[0][0]
	buf.Resize(50)
	if &buf.Data[0][0] != before {
		t.Error("Resize within capacity reallocated")
	}
}

func TestBuffer_Interleaved(t *testing.T) {
	t.Parallel()

	buf := &Buffer[float64]{SampleRate: 1, Data: [][]float64{{1, 2}, {3, 4}}}

	if got, want := buf.Interleaved(), []float64{1, 3, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Interleaved() = %v, want %v", got, want)
	}
}

func TestBuffer_GoAudioRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("int16", func(t *testing.T) {
		t.Parallel()

		buf := &Buffer[int16]{SampleRate: 8000, Data: [][]int16{{1, -2}, {3, -4}}}

		ib, ok := buf.ToGoAudio().(*goaudio.IntBuffer)
		if !ok {
			t.Fatalf("ToGoAudio() type = %T, want *IntBuffer", buf.ToGoAudio())
		}
		if ib.SourceBitDepth != 16 || !reflect.DeepEqual(ib.Data, []int{1, 3, -2, -4}) {
			t.Errorf("IntBuffer = depth %d, data %v", ib.SourceBitDepth, ib.Data)
		}

		back, err := FromGoAudio(ib)
		if err != nil {
			t.Fatalf("FromGoAudio() error = %v", err)
		}
		if !reflect.DeepEqual(back, AnyBuffer(buf)) {
			t.Errorf("FromGoAudio() = %+v, want %+v", back, buf)
		}
	})

	t.Run("int32", func(t *testing.T) {
		t.Parallel()

		buf := &Buffer[int32]{SampleRate: 96000, Data: [][]int32{{1 << 30, -5}}}

		back, err := FromGoAudio(buf.ToGoAudio())
		if err != nil {
			t.Fatalf("FromGoAudio() error = %v", err)
		}
		if !reflect.DeepEqual(back, AnyBuffer(buf)) {
			t.Errorf("FromGoAudio() = %+v, want %+v", back, buf)
		}
	})

	t.Run("float32", func(t *testing.T) {
		t.Parallel()

		buf := &Buffer[float32]{SampleRate: 44100, Data: [][]float32{{0.5}, {-0.5}, {0.25}}}

		back, err := FromGoAudio(buf.ToGoAudio())
		if err != nil {
			t.Fatalf("FromGoAudio() error = %v", err)
		}
		if !reflect.DeepEqual(back, AnyBuffer(buf)) {
			t.Errorf("FromGoAudio() = %+v, want %+v", back, buf)
		}
	})

	t.Run("float64", func(t *testing.T) {
		t.Parallel()

		buf := &Buffer[float64]{SampleRate: 22050, Data: [][]float64{{0.1, 0.2, 0.3}}}

		back, err := FromGoAudio(buf.ToGoAudio())
		if err != nil {
			t.Fatalf("FromGoAudio() error = %v", err)
		}
		if !reflect.DeepEqual(back, AnyBuffer(buf)) {
			t.Errorf("FromGoAudio() = %+v, want %+v", back, buf)
		}
	})
}

func TestFromGoAudio_Int24Widens(t *testing.T) {
	t.Parallel()

	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 48000},
		Data:           []int{0x7FFFFF},
		SourceBitDepth: 24,
	}

	back, err := FromGoAudio(ib)
	if err != nil {
		t.Fatalf("FromGoAudio() error = %v", err)
	}
	if back.SampleType() != Int32 {
		t.Errorf("SampleType() = %v, want int32", back.SampleType())
	}
}

func TestFromGoAudio_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  goaudio.Buffer
	}{
		{"nil", nil},
		{"no format", &goaudio.IntBuffer{Data: []int{1}}},
		{"zero channels", &goaudio.FloatBuffer{Format: &goaudio.Format{SampleRate: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := FromGoAudio(tt.buf); !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("FromGoAudio() error = %v, want ErrInvalidDescriptor", err)
			}
		})
	}
}
