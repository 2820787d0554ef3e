// SPDX-License-Identifier: EPL-2.0

//go:build vorbisenc

package vorbis

/*
#cgo pkg-config: vorbisenc vorbis ogg
#include <stdlib.h>
#include <vorbis/vorbisenc.h>

typedef struct {
	ogg_stream_state os;
	ogg_page         og;
	ogg_packet       op;
	ogg_packet       hdr[3];
	vorbis_info      vi;
	vorbis_comment   vc;
	vorbis_dsp_state vd;
	vorbis_block     vb;
} venc_state;
*/
import "C"

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"unsafe"
)

// EncoderAvailable reports whether this build can write Ogg Vorbis.
const EncoderAvailable = true

// Initialization stages, torn down in reverse by release.
const (
	stageInfo = iota + 1
	stageComment
	stageDSP
	stageBlock
	stageStream
)

// libvorbis keeps pointers between its structs, so the state lives in C
// memory for the encoder's lifetime.
type vorbisEncoder struct {
	st       *C.venc_state
	stage    int
	channels int
	w        io.Writer
}

func newEncoder(channels, sampleRate int, quality float32) (encoder, error) {
	st := (*C.venc_state)(C.calloc(1, C.size_t(C.sizeof_venc_state)))
	if st == nil {
		return nil, errors.New("allocating encoder state")
	}

	e := &vorbisEncoder{st: st, channels: channels}

	C.vorbis_info_init(&st.vi)
	e.stage = stageInfo

	if rc := C.vorbis_encode_init_vbr(&st.vi, C.long(channels), C.long(sampleRate), C.float(quality)); rc != 0 {
		e.release()

		return nil, fmt.Errorf("%w: %d channels at %d Hz (code %d)", ErrEncoderSetup, channels, sampleRate, int(rc))
	}

	C.vorbis_comment_init(&st.vc)
	e.stage = stageComment

	if rc := C.vorbis_analysis_init(&st.vd, &st.vi); rc != 0 {
		e.release()

		return nil, fmt.Errorf("%w: analysis init (code %d)", ErrEncoderSetup, int(rc))
	}
	e.stage = stageDSP

	if rc := C.vorbis_block_init(&st.vd, &st.vb); rc != 0 {
		e.release()

		return nil, fmt.Errorf("%w: block init (code %d)", ErrEncoderSetup, int(rc))
	}
	e.stage = stageBlock

	if rc := C.ogg_stream_init(&st.os, C.int(rand.Int32())); rc != 0 {
		e.release()

		return nil, fmt.Errorf("%w: ogg stream init (code %d)", ErrEncoderSetup, int(rc))
	}
	e.stage = stageStream

	if rc := C.vorbis_analysis_headerout(&st.vd, &st.vc, &st.hdr[0], &st.hdr[1], &st.hdr[2]); rc != 0 {
		e.release()

		return nil, fmt.Errorf("%w: header packets (code %d)", ErrEncoderSetup, int(rc))
	}
	for i := range st.hdr {
		C.ogg_stream_packetin(&st.os, &st.hdr[i])
	}

	return e, nil
}

// begin flushes the header packets so audio starts on a fresh page.
func (e *vorbisEncoder) begin(w io.Writer) error {
	e.w = w

	return e.pages(true)
}

func (e *vorbisEncoder) buffer(frames int) [][]float32 {
	bufs := C.vorbis_analysis_buffer(&e.st.vd, C.int(frames))

	planes := make([][]float32, e.channels)
	for ch, p := range unsafe.Slice(bufs, e.channels) {
		planes[ch] = unsafe.Slice((*float32)(unsafe.Pointer(p)), frames)
	}

	return planes
}

func (e *vorbisEncoder) wrote(frames int) error {
	if rc := C.vorbis_analysis_wrote(&e.st.vd, C.int(frames)); rc != 0 {
		return fmt.Errorf("submitting samples (code %d)", int(rc))
	}

	return e.drain()
}

func (e *vorbisEncoder) finish() error {
	if err := e.wrote(0); err != nil {
		return err
	}

	return e.pages(true)
}

// drain turns every complete block into packets and writes full pages.
func (e *vorbisEncoder) drain() error {
	st := e.st

	for C.vorbis_analysis_blockout(&st.vd, &st.vb) == 1 {
		if rc := C.vorbis_analysis(&st.vb, nil); rc != 0 {
			return fmt.Errorf("analysis (code %d)", int(rc))
		}
		if rc := C.vorbis_bitrate_addblock(&st.vb); rc != 0 {
			return fmt.Errorf("bitrate management (code %d)", int(rc))
		}

		for C.vorbis_bitrate_flushpacket(&st.vd, &st.op) == 1 {
			C.ogg_stream_packetin(&st.os, &st.op)

			if err := e.pages(false); err != nil {
				return err
			}
		}
	}

	return nil
}

// pages writes the pages the stream has ready. With flush set, a partial
// page is forced out too.
func (e *vorbisEncoder) pages(flush bool) error {
	st := e.st

	for {
		var ready C.int
		if flush {
			ready = C.ogg_stream_flush(&st.os, &st.og)
		} else {
			ready = C.ogg_stream_pageout(&st.os, &st.og)
		}
		if ready == 0 {
			return nil
		}

		header := unsafe.Slice((*byte)(unsafe.Pointer(st.og.header)), int(st.og.header_len))
		if _, err := e.w.Write(header); err != nil {
			return fmt.Errorf("%w", err)
		}

		body := unsafe.Slice((*byte)(unsafe.Pointer(st.og.body)), int(st.og.body_len))
		if _, err := e.w.Write(body); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
}

func (e *vorbisEncoder) release() {
	st := e.st
	if st == nil {
		return
	}

	if e.stage >= stageStream {
		C.ogg_stream_clear(&st.os)
	}
	if e.stage >= stageBlock {
		C.vorbis_block_clear(&st.vb)
	}
	if e.stage >= stageDSP {
		C.vorbis_dsp_clear(&st.vd)
	}
	if e.stage >= stageComment {
		C.vorbis_comment_clear(&st.vc)
	}
	C.vorbis_info_clear(&st.vi)

	C.free(unsafe.Pointer(st))
	e.st = nil
}
