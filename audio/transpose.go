// SPDX-License-Identifier: EPL-2.0

package audio

// Deinterleave copies frames interleaved frames from src into the planar
// dst, starting at frame offset of every channel. len(dst) is the channel
// count.
func Deinterleave[T Sample](dst [][]T, offset int, src []T, frames int) {
	channels := len(dst)

	switch channels {
	case 1:
		copy(dst[0][offset:offset+frames], src[:frames])
	case 2:
		left := dst[0][offset : offset+frames]
		right := dst[1][offset : offset+frames]
		for f := range frames {
			left[f] = src[2*f]
			right[f] = src[2*f+1]
		}
	default:
		for c, plane := range dst {
			plane = plane[offset : offset+frames]
			for f := range frames {
				plane[f] = src[f*channels+c]
			}
		}
	}
}

// Interleave copies frames planar frames of src, starting at frame offset,
// into the interleaved dst.
func Interleave[T Sample](dst []T, src [][]T, offset, frames int) {
	channels := len(src)

	switch channels {
	case 1:
		copy(dst[:frames], src[0][offset:offset+frames])
	case 2:
		left := src[0][offset : offset+frames]
		right := src[1][offset : offset+frames]
		for f := range frames {
			dst[2*f] = left[f]
			dst[2*f+1] = right[f]
		}
	default:
		for c, plane := range src {
			plane = plane[offset : offset+frames]
			for f := range frames {
				dst[f*channels+c] = plane[f]
			}
		}
	}
}
