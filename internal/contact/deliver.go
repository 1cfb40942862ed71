package contact

import (
	"errors"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Status is the outcome of Deliver.
type Status string

const (
	EmailOpened Status = "email-opened"
	Copied      Status = "copied"
	Manual      Status = "manual"
)

// Opener hands a URL to the desktop.
type Opener interface {
	Open(url string) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Deliver tries the mail client first, then the clipboard. Manual means
// the caller must show the fallback text for the visitor to copy.
func Deliver(m Message, opener Opener, cb Clipboard) Status {
	if opener != nil && opener.Open(m.MailtoURL()) == nil {
		return EmailOpened
	}
	if cb != nil && cb.WriteAll(m.Fallback()) == nil {
		return Copied
	}
	return Manual
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported")
	}
	return clipboard.WriteAll(text)
}

// SystemOpener runs the platform URL handler.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
