package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// WithSpinner runs an action while displaying a spinner. Returns the result of the action.
// If immediate is false, it waits 100ms before showing, so fast actions never flicker.
func WithSpinner[T any](w io.Writer, message string, immediate bool, action func() (T, error)) (T, error) {
	done := make(chan struct{})
	var result T
	var err error

	go func() {
		result, err = action()
		close(done)
	}()

	if !immediate {
		select {
		case <-done:
			return result, err
		case <-time.After(100 * time.Millisecond):
		}
	}

	if w == nil {
		w = os.Stderr
	}

	frames := spinner.Dot
	frame := 0
	ticker := time.NewTicker(frames.FPS)
	defer ticker.Stop()

	accent := S().Accent
	fmt.Fprintf(w, "\r%s %s", message, accent.Render(frames.Frames[frame]))

	for {
		select {
		case <-done:
			// Clear spinner line
			fmt.Fprintf(w, "\r\033[K")
			return result, err
		case <-ticker.C:
			frame = (frame + 1) % len(frames.Frames)
			fmt.Fprintf(w, "\r%s %s", message, accent.Render(frames.Frames[frame]))
		}
	}
}
