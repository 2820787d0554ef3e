// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Info describes an open stream.
type Info struct {
	// Frames is the total frame count. Zero means unknown.
	Frames     int64
	SampleRate int
	Channels   int
	// Format is a container flag OR'd with a subformat flag.
	Format   int
	Sections int
	Seekable bool
}

// Container returns the container encoded in Format.
func (i Info) Container() (ContainerFormat, error) {
	return FormatFlagToContainer(i.Format)
}

// Subformat returns the subformat bits of Format.
func (i Info) Subformat() int { return i.Format & SubMask }

func (i Info) validate() error {
	if i.Channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrInvalidDescriptor, i.Channels)
	}
	if i.SampleRate < 1 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidDescriptor, i.SampleRate)
	}

	return nil
}

func (i Info) String() string {
	c, err := i.Container()
	name := "unknown"
	if err == nil {
		name = c.String()
	}

	return fmt.Sprintf("%s/%s %d Hz, %d ch, %d frames",
		name, SubformatName(i.Format), i.SampleRate, i.Channels, i.Frames)
}
