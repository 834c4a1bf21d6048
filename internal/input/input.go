// Package input turns raw terminal bytes into key events.
package input

import (
	"bufio"
)

// Key identifiers, named after the browser KeyboardEvent.key values.
const (
	KeyLeft    = "ArrowLeft"
	KeyRight   = "ArrowRight"
	KeyUp      = "ArrowUp"
	KeyDown    = "ArrowDown"
	KeyEnter   = "Enter"
	KeyEscape  = "Escape"
	KeySpace   = " "
	KeyCtrlC   = "Ctrl+C"
	KeyBackspc = "Backspace"
)

// Input represents the keys pressed since the previous frame, in order.
type Input struct {
	Keys    []string // One entry per key press
	Quit    bool     // q, Q or Ctrl+C was pressed
	Closed  bool     // The underlying reader is gone
	Pressed []byte   // Raw bytes, for activity tracking
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Start of an escape sequence split across reads
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking)
// and parses them into key presses.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	fresh := 0

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	// Hold a trailing partial sequence for one frame so the rest can arrive.
	if fresh > 0 && !s.closed {
		if n := partialSequence(buf); n > 0 {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	input := Parse(buf)
	input.Closed = s.closed
	return input
}

// Parse converts a batch of terminal bytes into key presses.
// Arrow keys arrive as CSI sequences (ESC [ A..D); an ESC that does not start
// a sequence is reported as Escape.
func Parse(buf []byte) Input {
	input := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			if key := arrowKey(buf[i+2]); key != "" {
				input.Keys = append(input.Keys, key)
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q':
			input.Quit = true
		case 0x03:
			input.Quit = true
			input.Keys = append(input.Keys, KeyCtrlC)
			continue
		}

		if key := byteKey(b); key != "" {
			input.Keys = append(input.Keys, key)
		}
	}

	return input
}

// partialSequence returns the length of an unfinished ESC or ESC [ at the end of buf.
func partialSequence(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && (buf[n-1] == '[' || buf[n-1] == 'O'):
		return 2
	}
	return 0
}

// arrowKey maps the final byte of a CSI/SS3 cursor sequence.
func arrowKey(b byte) string {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return ""
}

// byteKey names a single-byte key press.
func byteKey(b byte) string {
	switch {
	case b == '\r' || b == '\n':
		return KeyEnter
	case b == '\x1b':
		return KeyEscape
	case b == '\b' || b == 0x7f:
		return KeyBackspc
	case b >= ' ' && b <= '~':
		return string(rune(b))
	}
	return ""
}
