// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/sndstream/audio"
)

// encodeRaw writes a single-block FLAC file at an arbitrary bit depth.
func encodeRaw(t *testing.T, depth uint8, channels [][]int32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.flac")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n := len(channels[0])

	enc, err := goflac.NewEncoder(f, &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  uint16(max(n, 16)),
		SampleRate:    8000,
		NChannels:     uint8(len(channels)),
		BitsPerSample: depth,
		NSamples:      uint64(n),
	})
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	subframes := make([]*frame.Subframe, len(channels))
	for ch := range channels {
		subframes[ch] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   channels[ch],
			NSamples:  n,
		}
	}

	err = enc.WriteFrame(&frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(n),
			SampleRate:        8000,
			Channels:          frame.Channels(len(channels) - 1),
			BitsPerSample:     depth,
		},
		Subframes: subframes,
	})
	if err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_ = f.Close()

	return path
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"marker", []byte("fLaC\x00\x00\x00\x22"), true},
		{"lowercase", []byte("flac"), false},
		{"riff", []byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{"short", []byte("fL"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Detect(bytes.NewReader(tt.data)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubformat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		want  int
	}{
		{4, audio.SubformatPCMS8},
		{8, audio.SubformatPCMS8},
		{12, audio.SubformatPCM16},
		{16, audio.SubformatPCM16},
		{20, audio.SubformatPCM24},
		{24, audio.SubformatPCM24},
		{32, audio.SubformatPCM32},
	}

	for _, tt := range tests {
		got, err := subformat(tt.depth)
		if err != nil {
			t.Errorf("subformat(%d) error = %v", tt.depth, err)

			continue
		}
		if got != tt.want {
			t.Errorf("subformat(%d) = %#x, want %#x", tt.depth, got, tt.want)
		}
	}

	if _, err := subformat(7); !errors.Is(err, ErrBitDepth) {
		t.Errorf("subformat(7) error = %v, want ErrBitDepth", err)
	}
}

func TestRoundTrip_Int16AcrossBlocks(t *testing.T) {
	t.Parallel()

	const (
		channels = 2
		frames   = 3*defaultBlockSize + 123
	)

	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16((i*37)%65536 - 32768)
	}

	path := filepath.Join(t.TempDir(), "out.flac")
	info := audio.Info{SampleRate: 44100, Channels: channels, Format: audio.FormatFLAC | audio.SubformatPCM16}

	h, err := Codec{}.Open(path, audio.ModeWrite, &info)
	if err != nil {
		t.Fatalf("Open(write) error = %v", err)
	}

	w := h.(audio.FrameWriter[int16])

	// Uneven chunks so block boundaries fall mid-call.
	for off := 0; off < frames; off += 1000 {
		end := min(off+1000, frames)

		n, err := w.WriteFrames(samples[off*channels : end*channels])
		if err != nil {
			t.Fatalf("WriteFrames() error = %v", err)
		}
		if n != end-off {
			t.Fatalf("WriteFrames() = %d, want %d", n, end-off)
		}
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var rinfo audio.Info

	rh, err := Codec{}.Open(path, audio.ModeRead, &rinfo)
	if err != nil {
		t.Fatalf("Open(read) error = %v", err)
	}
	defer rh.Close()

	if rinfo.Channels != channels || rinfo.SampleRate != 44100 {
		t.Errorf("info = %+v, want 2 channels at 44100", rinfo)
	}
	if rinfo.Format != audio.FormatFLAC|audio.SubformatPCM16 {
		t.Errorf("Format = %#x, want FLAC|PCM_16", rinfo.Format)
	}

	r := rh.(audio.FrameReader[int16])
	got := make([]int16, 0, len(samples))
	buf := make([]int16, 777*channels)

	for {
		n, err := r.ReadFrames(buf)
		got = append(got, buf[:n*channels]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}

	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestWrite_FailedFlushIsSticky(t *testing.T) {
	t.Parallel()

	const channels = 2

	path := filepath.Join(t.TempDir(), "out.flac")
	info := audio.Info{SampleRate: 8000, Channels: channels, Format: audio.FormatFLAC | audio.SubformatPCM16}

	h, err := Codec{}.Open(path, audio.ModeWrite, &info)
	if err != nil {
		t.Fatalf("Open(write) error = %v", err)
	}

	s := h.(*sink)

	// Leave a partial block buffered so the next flush happens mid-call.
	if n, err := s.WriteFrames(make([]int16, 100*channels)); err != nil || n != 100 {
		t.Fatalf("WriteFrames(100) = %d, %v, want 100, nil", n, err)
	}

	if err := s.f.Close(); err != nil {
		t.Fatalf("closing underlying file: %v", err)
	}

	n, err := s.WriteFrames(make([]int16, defaultBlockSize*channels))
	if err == nil {
		t.Fatal("WriteFrames() after file close error = nil, want error")
	}
	if n != 0 {
		t.Errorf("WriteFrames() = %d, want 0 frames accepted from the failed block", n)
	}

	n, again := s.WriteFrames(make([]int16, 3*channels))
	if again == nil || n != 0 {
		t.Errorf("WriteFrames() after failure = %d, %v, want 0 and the earlier error", n, again)
	}
	if again != nil && again.Error() != err.Error() {
		t.Errorf("WriteFrames() after failure error = %v, want %v", again, err)
	}

	if err := h.Close(); err == nil {
		t.Error("Close() after failed write error = nil, want error")
	}
}

func TestRead_LowDepthJustified(t *testing.T) {
	t.Parallel()

	data := make([]int32, 16)
	data[0], data[1], data[2] = 1, -1, math.MaxInt8
	path := encodeRaw(t, 8, [][]int32{data})

	var info audio.Info

	h, err := Codec{}.Open(path, audio.ModeRead, &info)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()

	if info.Subformat() != audio.SubformatPCMS8 {
		t.Fatalf("Subformat() = %#x, want PCM_S8", info.Subformat())
	}
	if info.Frames != 16 {
		t.Errorf("Frames = %d, want 16", info.Frames)
	}

	r, ok := h.(audio.FrameReader[int16])
	if !ok {
		t.Fatalf("handle %T is not a FrameReader[int16]", h)
	}

	dst := make([]int16, 16)
	if _, err := r.ReadFrames(dst); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadFrames() error = %v", err)
	}

	want := []int16{256, -256, 127 << 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestRead_24BitAsInt32(t *testing.T) {
	t.Parallel()

	data := make([]int32, 16)
	data[0], data[1] = 0x7FFFFF, -0x800000
	path := encodeRaw(t, 24, [][]int32{data})

	var info audio.Info

	h, err := Codec{}.Open(path, audio.ModeRead, &info)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()

	r, ok := h.(audio.FrameReader[int32])
	if !ok {
		t.Fatalf("handle %T is not a FrameReader[int32]", h)
	}

	dst := make([]int32, 2)
	if _, err := r.ReadFrames(dst); err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}

	if dst[0] != 0x7FFFFF<<8 || dst[1] != math.MinInt32 {
		t.Errorf("samples = %v, want [%d %d]", dst, 0x7FFFFF<<8, math.MinInt32)
	}
}

func TestOpenWrite_RejectsNonInt16(t *testing.T) {
	t.Parallel()

	for _, sub := range []int{audio.SubformatPCM24, audio.SubformatPCM32, audio.SubformatFloat} {
		path := filepath.Join(t.TempDir(), "bad.flac")
		info := audio.Info{SampleRate: 8000, Channels: 1, Format: audio.FormatFLAC | sub}

		_, err := Codec{}.Open(path, audio.ModeWrite, &info)
		if !errors.Is(err, ErrUnsupportedSubformat) {
			t.Errorf("Open(write, %s) error = %v, want ErrUnsupportedSubformat", audio.SubformatName(sub), err)
		}

		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("Open(write, %s) created %s", audio.SubformatName(sub), path)
		}
	}
}

func TestOpenRead_NotFLAC(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.flac")
	if err := os.WriteFile(path, []byte("definitely not flac"), 0o600); err != nil {
		t.Fatal(err)
	}

	var info audio.Info

	if _, err := (Codec{}).Open(path, audio.ModeRead, &info); !errors.Is(err, ErrReadFailure) {
		t.Errorf("Open() error = %v, want ErrReadFailure", err)
	}
}
