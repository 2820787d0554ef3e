// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedSampleType = errors.New("unsupported sample type")
	ErrUnknownContainer      = errors.New("unknown container format")
	ErrSampleTypeMismatch    = errors.New("buffer sample type does not match stream")
	ErrBufferShape           = errors.New("buffer shape does not fit request")
	ErrClosed                = errors.New("stream is closed")
	ErrInvalidDescriptor     = errors.New("invalid stream descriptor")
)

// OpenError is returned when a codec refuses to open a file.
type OpenError struct {
	Path    string
	Message string
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %s", e.Path, e.Message)
}

func (e *OpenError) Unwrap() error { return e.Err }

// CloseError is returned when releasing a codec handle fails. The handle is
// unusable afterwards.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("close %s: failed", e.Path)
	}

	return fmt.Sprintf("close %s: %v", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error { return e.Err }

// UnrecognizedFormatError carries a subformat code missing from the sample
// type table.
type UnrecognizedFormatError struct {
	Code int
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized sample encoding 0x%04x", e.Code)
}

// IncompleteWriteError reports a save that stored fewer frames than the
// buffer held.
type IncompleteWriteError struct {
	Written  int64
	Expected int64
}

func (e *IncompleteWriteError) Error() string {
	return fmt.Sprintf("incomplete write: wrote %d of %d frames", e.Written, e.Expected)
}
