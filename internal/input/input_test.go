package input

import (
	"bufio"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keys []string
		quit bool
	}{
		{"letters", "adR", []string{"a", "d", "R"}, false},
		{"arrows", "\x1b[D\x1b[C", []string{KeyLeft, KeyRight}, false},
		{"application mode arrows", "\x1bOD", []string{KeyLeft}, false},
		{"lone escape", "\x1b", []string{KeyEscape}, false},
		{"quit", "aq", []string{"a", "q"}, true},
		{"ctrl c", "\x03", []string{KeyCtrlC}, true},
		{"enter and controls", "\r\x00", []string{KeyEnter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			if !reflect.DeepEqual(got.Keys, tt.keys) {
				t.Fatalf("keys = %q, want %q", got.Keys, tt.keys)
			}
			if got.Quit != tt.quit {
				t.Fatalf("quit = %v, want %v", got.Quit, tt.quit)
			}
		})
	}
}

func TestReadInputDrainsStreamAndReportsClose(t *testing.T) {
	pr, pw := io.Pipe()
	s := StartStream(bufio.NewReader(pr))

	go func() {
		pw.Write([]byte("a\x1b[C"))
		pw.Close()
	}()

	var keys []string
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		keys = append(keys, in.Keys...)
		if in.Closed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if want := []string{"a", KeyRight}; strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %q, want %q", keys, want)
	}
	if !ReadInput(s).Closed {
		t.Fatalf("stream should stay closed")
	}
}
