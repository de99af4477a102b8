// Package terminal owns the tty for the animation: raw mode, the
// alternate screen, frame output and key input. The renderer produces
// complete ANSI frames on its own, so the backend only has to move
// bytes and report the window size.
package terminal

// Backend abstracts platform-specific terminal operations.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed,
	// or an error occurs. A nil slice with nil error means stop or EOF.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
