package form

import (
	"github.com/atotto/clipboard"
)

// systemClipboard writes to the OS clipboard. On Linux it needs xclip, xsel or
// wl-clipboard to be installed.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
