package keys

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Reader yields one Action per user input. At end of input it returns
// ActionExit together with io.EOF.
type Reader interface {
	ReadAction() (Action, error)
}

// NewReader picks a raw TerminalReader when f is a terminal and a
// LineReader otherwise.
func NewReader(f *os.File) Reader {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewTerminalReader(f)
	}
	return NewLineReader(f)
}

// TerminalReader reads single key presses. The terminal is switched to raw
// mode only for the duration of each read so that output printed between
// reads keeps its normal line discipline.
type TerminalReader struct {
	f   *os.File
	buf []byte
}

// NewTerminalReader returns a reader for the terminal f.
func NewTerminalReader(f *os.File) *TerminalReader {
	return &TerminalReader{f: f, buf: make([]byte, 8)}
}

// ReadAction blocks until a key is pressed.
func (r *TerminalReader) ReadAction() (Action, error) {
	fd := int(r.f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return ActionNone, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	seq, err := r.readKey()
	if err != nil {
		return ActionExit, err
	}
	return Decode(seq), nil
}

// readKey reads one key press. Arrow keys usually arrive in a single read;
// when only the prefix arrived, the rest is read before decoding.
func (r *TerminalReader) readKey() ([]byte, error) {
	n, err := r.f.Read(r.buf)
	if err != nil {
		return nil, err
	}
	seq := append([]byte(nil), r.buf[:n]...)

	for IsArrowPrefix(seq) {
		n, err = r.f.Read(r.buf)
		if err != nil {
			return nil, err
		}
		seq = append(seq, r.buf[:n]...)
	}
	return seq, nil
}

// LineReader reads newline-terminated commands, for piped or redirected
// input:
//
//	""                    confirm
//	q, quit, exit         exit
//	n, f, next, >         forward
//	b, p, prev, back, <   back
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(r)}
}

// ReadAction reads the next line.
func (r *LineReader) ReadAction() (Action, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return ActionExit, err
		}
		return ActionExit, io.EOF
	}

	switch strings.ToLower(strings.TrimSpace(r.scanner.Text())) {
	case "":
		return ActionConfirm, nil
	case "q", "quit", "exit":
		return ActionExit, nil
	case "n", "f", "next", ">":
		return ActionForward, nil
	case "b", "p", "prev", "back", "<":
		return ActionBack, nil
	default:
		return ActionNone, nil
	}
}
