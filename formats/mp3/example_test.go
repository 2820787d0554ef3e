// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/sndstream/formats/mp3"
)

func ExampleDetect() {
	for _, head := range [][]byte{
		[]byte("ID3\x04\x00"),
		{0xFF, 0xFB, 0x90, 0x64},
		[]byte("fLaC"),
	} {
		fmt.Println(mp3.Detect(bytes.NewReader(head)))
	}
	// Output:
	// true
	// true
	// false
}
