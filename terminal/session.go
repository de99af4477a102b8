package terminal

import (
	"io"
	"os"
	"sync"
)

// Control sequences for session setup and teardown
var (
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiSGR0       = []byte("\x1b[0m")
	csiClear      = []byte("\x1b[2J\x1b[H")
	csiRIS        = []byte("\x1bc") // Reset to Initial State (emergency)

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// DECAWM off keeps the cursor from wrapping and scrolling when a
	// frame touches the bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")
)

// Session owns the terminal for the lifetime of the animation: raw
// mode, the alternate screen and the input reader. It is an io.Writer
// so rendered frames stream straight into it.
type Session struct {
	backend Backend
	input   *inputReader

	resizeCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewSession creates a session over the platform backend
func NewSession() *Session {
	return &Session{
		backend:  newBackend(),
		resizeCh: make(chan Event, 1),
	}
}

// Init enters raw mode, switches to the alternate screen, hides the
// cursor and starts the input reader
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.backend.Init(); err != nil {
		return err
	}

	s.input = newInputReader(s.backend)

	s.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Keep only the latest size pending
		select {
		case s.resizeCh <- ev:
		default:
			select {
			case <-s.resizeCh:
			default:
			}
			select {
			case s.resizeCh <- ev:
			default:
			}
		}
	})

	s.backend.Write(csiAltScreenEnter)
	s.backend.Write(csiCursorHide)
	s.backend.Write(csiAutoWrapOff)
	s.backend.Write(csiClear)

	s.input.start()

	s.initialized = true
	return nil
}

// Fini restores the terminal. Safe to call multiple times.
func (s *Session) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	s.input.stop()

	s.backend.Write(csiCursorShow)
	s.backend.Write(csiAltScreenExit)
	// Restore wrap after leaving the alt screen so the main buffer
	// keeps it enabled
	s.backend.Write(csiAutoWrapOn)
	s.backend.Write(csiSGR0)

	s.backend.Fini()

	s.finalized = true
}

// Size returns the current terminal dimensions in cells
func (s *Session) Size() (int, int) {
	return s.backend.Size()
}

// Write streams raw frame bytes to the terminal
func (s *Session) Write(p []byte) (int, error) {
	if err := s.backend.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// PollEvent blocks until the next input or resize event
func (s *Session) PollEvent() Event {
	select {
	case ev := <-s.input.events():
		return ev
	case ev := <-s.resizeCh:
		return ev
	}
}

// Events returns the input event channel for select-based loops
func (s *Session) Events() <-chan Event {
	return s.input.events()
}

// ResizeEvents returns the resize event channel
func (s *Session) ResizeEvents() <-chan Event {
	return s.resizeCh
}

// EmergencyReset restores the terminal to a sane state from panic
// recovery, when Fini cannot run normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone do not restore termios
	resetTerminalMode()
}
