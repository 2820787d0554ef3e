// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SampleType is the in-memory numeric representation of decoded samples.
type SampleType int

const (
	Int16 SampleType = iota + 1
	Int32
	Float32
	Float64
)

func (t SampleType) String() string {
	switch t {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("sampletype(%d)", int(t))
	}
}

// BitDepth is the number of bits in one sample of type t, or 0 for an
// unknown type.
func (t SampleType) BitDepth() int {
	switch t {
	case Int16:
		return 16
	case Int32, Float32:
		return 32
	case Float64:
		return 64
	default:
		return 0
	}
}

// ParseSampleType maps the names returned by SampleType.String back to the
// type.
func ParseSampleType(s string) (SampleType, error) {
	for _, t := range []SampleType{Int16, Int32, Float32, Float64} {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSampleType, s)
}

// Sample is the set of Go types a stream can be read into or written from.
type Sample interface {
	int16 | int32 | float32 | float64
}

// SampleTypeOf returns the SampleType tag for T.
func SampleTypeOf[T Sample]() SampleType {
	var zero T
	switch any(zero).(type) {
	case int16:
		return Int16
	case int32:
		return Int32
	case float32:
		return Float32
	default:
		return Float64
	}
}

// SampleTypeToSubformatFlag returns the subformat flag a codec stores
// samples of type t with.
func SampleTypeToSubformatFlag(t SampleType) (int, error) {
	switch t {
	case Int16:
		return SubformatPCM16, nil
	case Int32:
		return SubformatPCM32, nil
	case Float32:
		return SubformatFloat, nil
	case Float64:
		return SubformatDouble, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedSampleType, t)
	}
}

// NativeEncodingToSampleType maps the subformat bits of a codec format code
// to the SampleType samples are decoded into. The mapping narrows: both 8-bit
// encodings and 16-bit PCM decode to Int16, 24 and 32-bit PCM to Int32.
func NativeEncodingToSampleType(code int) (SampleType, error) {
	switch masked := code & SubMask; masked {
	case SubformatPCMS8, SubformatPCMU8, SubformatPCM16:
		return Int16, nil
	case SubformatPCM24, SubformatPCM32:
		return Int32, nil
	case SubformatFloat, SubformatVorbis:
		return Float32, nil
	case SubformatDouble:
		return Float64, nil
	default:
		return 0, &UnrecognizedFormatError{Code: masked}
	}
}
