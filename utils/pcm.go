// SPDX-License-Identifier: EPL-2.0

package utils

// Uint8ToInt16 widens an unsigned 8-bit sample (128 is silence) to int16.
func Uint8ToInt16(v uint8) int16 {
	return int16(int(v)-128) << 8
}

// JustifyInt16 left-justifies a sample of depth bits into int16.
// Depths of 16 or more are truncated to the low 16 bits.
func JustifyInt16(v int32, depth int) int16 {
	if depth >= 16 || depth <= 0 {
		return int16(v)
	}

	return int16(v << (16 - depth))
}

// JustifyInt32 left-justifies a sample of depth bits into int32.
func JustifyInt32(v int32, depth int) int32 {
	if depth >= 32 || depth <= 0 {
		return v
	}

	return v << (32 - depth)
}
