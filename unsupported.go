// SPDX-License-Identifier: EPL-2.0

package audsniff

import (
	"github.com/ik5/audsniff/audio"
)

// wmaMagic is the first four bytes of the ASF header GUID.
var wmaMagic = []byte{0x30, 0x26, 0xB2, 0x75}

const wmaMessage = "WMA audio files are not supported. Reinstall the\n" +
	"game and don't convert them when asked by Windows!\n"

// unsupportedBackend stands in for formats that are recognised but
// refused. It is finished from the start and carries a message for the
// user, so playback ends cleanly instead of failing. Seeking always
// succeeds so a looping decoder can rewind it.
type unsupportedBackend struct {
	kind    string
	message string
}

func newWMABackend() *unsupportedBackend {
	return &unsupportedBackend{kind: "wma", message: wmaMessage}
}

func (*unsupportedBackend) Open(audio.Stream) error          { return ErrUnsupportedFormat }
func (*unsupportedBackend) FillBuffer([]byte) int            { return -1 }
func (*unsupportedBackend) IsFinished() bool                 { return true }
func (*unsupportedBackend) Seek(int64, int) error            { return nil }
func (*unsupportedBackend) Format() (int, audio.Format, int) { return 0, audio.S16, 0 }

func (u *unsupportedBackend) Type() string         { return u.kind }
func (u *unsupportedBackend) ErrorMessage() string { return u.message }
